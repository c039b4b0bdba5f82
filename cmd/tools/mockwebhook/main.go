package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Channel   string `json:"channel"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

// Posts a Paystack-shaped, SHA512-signed webhook at a local server. Useful
// for exercising the webhook path without a gateway round trip.
func main() {
	url := flag.String("url", "http://localhost:8080/webhooks/paystack", "Webhook URL")
	secret := flag.String("secret", os.Getenv("PAYSTACK_SECRET_KEY"), "Signing secret")
	event := flag.String("event", "charge.success", "Event type (charge.success, charge.failed)")
	reference := flag.String("reference", "", "Payment reference (required)")
	channel := flag.String("channel", "card", "Payment channel")
	amount := flag.Int64("amount", 26000, "Amount in kobo")
	dryRun := flag.Bool("dry-run", false, "Only print signature and body, don't send")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: secret not provided and PAYSTACK_SECRET_KEY not set")
		os.Exit(1)
	}
	if *reference == "" {
		fmt.Fprintln(os.Stderr, "Error: -reference is required")
		os.Exit(1)
	}

	payload := webhookPayload{Event: *event}
	payload.Data.Reference = *reference
	payload.Data.Channel = *channel
	payload.Data.Amount = *amount
	payload.Data.Currency = "NGN"

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	mac := hmac.New(sha512.New, []byte(*secret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	fmt.Printf("x-paystack-signature: %s\n", sig)
	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", *url)
	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-paystack-signature", sig)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\nResponse: %s\n", resp.Status, string(respBody))
}
