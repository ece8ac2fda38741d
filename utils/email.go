package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// ReservationConfirmationData feeds the confirmation email template.
type ReservationConfirmationData struct {
	CustomerName string
	TableNumber  int
	Date         string
	PartySize    int
	Duration     int
	Notes        string
}

// SendReservationConfirmationEmail sends the reservation confirmation (async,
// so the request never waits on SMTP).
func SendReservationConfirmationEmail(to string, data ReservationConfirmationData) {
	if to == "" {
		return
	}
	go func() {
		tmplPath := "templates/reservation_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("error loading email template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("error rendering email template: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Confirmación de reserva - Mesa "+strconv.Itoa(data.TableNumber))
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("error sending email: %v", err)
		}
	}()
}
