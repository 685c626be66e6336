package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Client cria preferências de checkout para o sinal do booking.
// Sem access token configurado, o client fica desabilitado e nenhuma
// preferência é criada — o booking segue normalmente.
type Client struct {
	prefs preference.Client
}

func New(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Client{prefs: preference.NewClient(cfg)}, nil
}

func (c *Client) Enabled() bool {
	return c != nil
}

// CreateBookingPreference retorna a URL de checkout (init point)
func (c *Client) CreateBookingPreference(
	ctx context.Context,
	b *models.Booking,
	serviceName string,
) (string, error) {

	req := preference.Request{
		ExternalReference: b.Reference,
		Items: []preference.ItemRequest{
			{
				Title:     serviceName,
				Quantity:  1,
				UnitPrice: b.Price,
			},
		},
	}

	resp, err := c.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return resp.InitPoint, nil
}
