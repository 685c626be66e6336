package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Só os caminhos que não tocam DNS — o lookup real depende da rede
func TestIsEmailDomainValid_Rejections(t *testing.T) {
	assert.False(t, IsEmailDomainValid(""))
	assert.False(t, IsEmailDomainValid("sem-arroba"))
	assert.False(t, IsEmailDomainValid("termina-no-arroba@"))
	assert.False(t, IsEmailDomainValid("@comeca-no-arroba.com"))
	assert.False(t, IsEmailDomainValid("cliente@dominio-sem-ponto"))
}
