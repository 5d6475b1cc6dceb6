package services_test

import (
	"context"
	"promo_store_server/services"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailServiceWithoutKeyIsNoop(t *testing.T) {
	emails := services.NewEmailService(gecho.NewDefaultLogger(), &structs.EmailConfig{From: "shop@example.com"})
	assert.False(t, emails.Enabled())

	err := emails.SendOrderConfirmationEmail(context.Background(), &tables.Order{
		ID:            1,
		CustomerName:  "<script>",
		CustomerEmail: "ada@example.com",
		Total:         8500,
		Items: []*tables.OrderItem{
			{ProductName: "Classic T-Shirt", Quantity: 1, Price: 8500},
		},
	})
	require.NoError(t, err)
}

func TestEmailServiceSatisfiesNotifier(t *testing.T) {
	var _ services.OrderNotifier = services.NewEmailService(gecho.NewDefaultLogger(), &structs.EmailConfig{})
}
