package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"tienda_back_end/internal/models"
)

// SendOrderConfirmation manda el mail de confirmación de compra por SMTP.
func SendOrderConfirmation(to string, order models.Order) error {
	msg := mail.NewMsg()

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "noreply@tienda.local"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Confirmación de tu compra")
	msg.SetBodyString(mail.TypeTextHTML, GenerateOrderConfirmationHTML(order))

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Enviando confirmación de compra a", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML arma el HTML del mail de confirmación.
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%s</td>
				<td>%s</td>
			</tr>`, item.Name, item.Quantity, FormatPrice(item.Price), FormatPrice(item.Price*float64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<title>Confirmación de compra</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">¡Gracias por tu compra!</h2>
		<p>Hola,</p>
		<p>Recibimos tu pago y tu pedido ya está confirmado.</p>

		<h3>Detalle del pedido</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Producto</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Cantidad</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Precio unitario</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%s</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Saludos,<br>
			<strong>El equipo de la tienda</strong>
		</p>
	</div>
</body>
</html>`, itemsHTML, FormatPrice(order.TotalAmount))
}
