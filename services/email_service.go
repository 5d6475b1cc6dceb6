package services

import (
	"context"
	"fmt"
	"html"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

// OrderNotifier is told about every order placed at checkout.
type OrderNotifier interface {
	SendOrderConfirmationEmail(ctx context.Context, order *tables.Order) error
}

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.EmailConfig
	client *resend.Client
}

// NewEmailService returns a service that only logs when no API key is set.
func NewEmailService(logger *gecho.Logger, cfg *structs.EmailConfig) *EmailService {
	es := &EmailService{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.ApiKey != "" {
		es.client = resend.NewClient(cfg.ApiKey)
	}
	return es
}

func (es *EmailService) Enabled() bool {
	return es.client != nil
}

func (es *EmailService) SendEmail(ctx context.Context, to []string, subject string, body string) error {
	if !es.Enabled() {
		es.logger.Debug("Email delivery disabled, skipping", gecho.Field("subject", subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	if _, err := es.client.Emails.Send(params); err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

func (es *EmailService) SendOrderConfirmationEmail(ctx context.Context, order *tables.Order) error {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "<li>%dx %s - %s</li>",
			item.Quantity,
			html.EscapeString(item.ProductName),
			formatCents(item.Price*int64(item.Quantity)),
		)
	}

	support := ""
	if es.cfg.SupportEmail != "" {
		support = fmt.Sprintf("<p>Questions? Contact us at %s</p>", html.EscapeString(es.cfg.SupportEmail))
	}

	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border-radius: 5px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<h1>Thank you for your order!</h1>
				<p>Dear %s,</p>
				<p>We received your order and will be in touch about your branding options.</p>
				<div class="order-details">
					<h3>Order #%d</h3>
					<ul>%s</ul>
					<p><strong>Total: %s</strong></p>
					<h4>Shipping address:</h4>
					<p>%s</p>
				</div>
				%s
			</div>
		</body>
		</html>
	`,
		html.EscapeString(order.CustomerName),
		order.ID,
		items.String(),
		formatCents(order.Total),
		strings.ReplaceAll(html.EscapeString(order.ShippingAddress), "\n", "<br>"),
		support,
	)

	to := []string{order.CustomerEmail}
	if es.cfg.SupportEmail != "" {
		to = append(to, es.cfg.SupportEmail)
	}

	return es.SendEmail(ctx, to, fmt.Sprintf("Order confirmation #%d", order.ID), body)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("€%d.%02d", cents/100, cents%100)
}
