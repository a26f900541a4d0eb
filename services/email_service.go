package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"dewode_server/structs"
	"dewode_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// FormatKRW renders an amount in won with thousands separators, e.g. 48000
// becomes "₩48,000".
func FormatKRW(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-₩" + b.String()
	}
	return "₩" + b.String()
}

// SendVerificationCodeEmail delivers the 6-digit checkout code.
func (es *EmailService) SendVerificationCodeEmail(email, code string, expiry time.Duration) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #111; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #111; color: white; padding: 20px; text-align: center; letter-spacing: 4px; }
				.content { padding: 20px; background-color: #f7f7f7; }
				.code { font-size: 32px; letter-spacing: 8px; text-align: center; padding: 20px; background-color: white; border: 1px solid #ddd; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>DEW ODE</h1>
				</div>
				<div class="content">
					<p>이메일 인증 코드입니다. 결제 확인 화면에 입력해 주세요.</p>
					<p>Enter this code on the checkout screen to verify your email address.</p>

					<div class="code"><strong>%s</strong></div>

					<p>이 코드는 %.0f분 후에 만료됩니다. / This code expires in %.0f minutes.</p>
					<p>주문을 진행하지 않으셨다면 이 메일을 무시하셔도 됩니다. / If you did not start a checkout, you can ignore this email.</p>
				</div>

				<div class="footer">
					<p>DEW ODE | dew-ode.com</p>
				</div>
			</div>
		</body>
		</html>
	`, code, expiry.Minutes(), expiry.Minutes())

	subject := "DEW ODE 이메일 인증 코드 / Email verification code"

	return es.SendEmail([]string{email}, subject, emailBody)
}

// SendOrderConfirmationEmail sends the post-checkout confirmation with the
// order number, line items, and bank transfer instructions.
func (es *EmailService) SendOrderConfirmationEmail(email, name, orderNumber string, items []tables.OrderItem, totalAmount int64) error {
	var itemsBuilder strings.Builder
	for _, item := range items {
		lineTotal := FormatKRW(item.PriceAtPurchase * int64(item.Quantity))
		fmt.Fprintf(&itemsBuilder, "<li>%dx %s - %s</li>", item.Quantity, item.ProductName, lineTotal)
	}
	itemsList := itemsBuilder.String()
	totalFormatted := FormatKRW(totalAmount)

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #111; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #111; color: white; padding: 20px; text-align: center; letter-spacing: 4px; }
				.content { padding: 20px; background-color: #f7f7f7; }
				.order-details { background-color: white; padding: 15px; margin: 15px 0; border: 1px solid #ddd; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
				ul { list-style-type: none; padding: 0; }
				li { padding: 5px 0; border-bottom: 1px solid #eee; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>DEW ODE</h1>
				</div>
				<div class="content">
					<p>%s 님, 주문해 주셔서 감사합니다. / Dear %s, thank you for your order.</p>

					<div class="order-details">
						<h3>주문번호 / Order Number: <strong>%s</strong></h3>
						<h4>주문 내역 / Order Items:</h4>
						<ul>%s</ul>
						<p><strong>합계 / Total: %s</strong></p>
					</div>

					<p><strong>무통장 입금 안내 / Bank transfer:</strong></p>
					<p>입금이 확인되면 배송 준비를 시작합니다. 입금 계좌는 주문 완료 화면에서 확인하실 수 있습니다.</p>
					<p>Once your transfer is confirmed we will start preparing your order. The bank account details are shown on the order confirmation screen.</p>

					<p>문의 / Questions: %s</p>
				</div>

				<div class="footer">
					<p>DEW ODE | dew-ode.com</p>
				</div>
			</div>
		</body>
		</html>
	`, name, name, orderNumber, itemsList, totalFormatted, es.cfg.Email.SupportEmail)

	subject := fmt.Sprintf("DEW ODE 주문 확인 / Order confirmation %s", orderNumber)

	return es.SendEmail([]string{email, es.cfg.Email.SupportEmail}, subject, emailBody)
}

// SendShippingNotificationEmail tells the customer their order is on the way.
func (es *EmailService) SendShippingNotificationEmail(email, name, orderNumber, trackingNumber string) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #111; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #111; color: white; padding: 20px; text-align: center; letter-spacing: 4px; }
				.content { padding: 20px; background-color: #f7f7f7; }
				.tracking { background-color: white; padding: 15px; margin: 15px 0; border: 1px solid #ddd; text-align: center; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>DEW ODE</h1>
				</div>
				<div class="content">
					<p>%s 님, 주문하신 상품이 발송되었습니다. / Dear %s, your order has been shipped.</p>

					<div class="tracking">
						<p>주문번호 / Order Number: <strong>%s</strong></p>
						<p>운송장 번호 / Tracking Number: <strong>%s</strong></p>
					</div>

					<p>문의 / Questions: %s</p>
				</div>

				<div class="footer">
					<p>DEW ODE | dew-ode.com</p>
				</div>
			</div>
		</body>
		</html>
	`, name, name, orderNumber, trackingNumber, es.cfg.Email.SupportEmail)

	subject := fmt.Sprintf("DEW ODE 배송 안내 / Shipping notification %s", orderNumber)

	return es.SendEmail([]string{email}, subject, emailBody)
}
