package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checa se o domínio do e-mail do cliente resolve
// (MX ou A/AAAA) antes de gravar o booking — barra typo óbvio sem
// depender de regex de e-mail.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
