package upn

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Field limits of the UPN QR text, in characters.
const (
	maxNameLen      = 33
	maxAddressLen   = 33
	maxPostLen      = 33
	maxCodeLen      = 4
	maxPurposeLen   = 42
	maxIBANLen      = 34
	maxReferenceLen = 26
)

const qrDueDateLayout = "02.01.2006"

// QRText returns the UPN QR payload: nineteen newline-terminated fields
// followed by a three digit control sum of their total length.
func QRText(slip PaymentSlip) string {
	fields := []string{
		"UPNQR",
		"", // payer IBAN
		"", // deposit
		"", // withdrawal
		"", // payer reference
		clip(slip.Payer.Name, maxNameLen),
		clip(slip.Payer.Address, maxAddressLen),
		clip(slip.Payer.Post, maxPostLen),
		fmt.Sprintf("%011d", slip.Amount),
		"", // payment date
		"", // urgent
		clip(slip.PurposeCode, maxCodeLen),
		clip(slip.Purpose, maxPurposeLen),
		slip.DueDate.Format(qrDueDateLayout),
		clip(compact(slip.Receiver.IBAN), maxIBANLen),
		clip(compact(slip.Reference), maxReferenceLen),
		clip(slip.Receiver.Name, maxNameLen),
		clip(slip.Receiver.Address, maxAddressLen),
		clip(slip.Receiver.Post, maxPostLen),
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	body := b.String()
	return fmt.Sprintf("%s%03d\n", body, utf8.RuneCountInString(body))
}

// EncodeQRText returns QRText encoded as ISO-8859-2, the charset UPN readers expect.
func EncodeQRText(slip PaymentSlip) ([]byte, error) {
	out, err := charmap.ISO8859_2.NewEncoder().Bytes([]byte(QRText(slip)))
	if err != nil {
		return nil, fmt.Errorf("upn: encode QR text: %w", err)
	}
	return out, nil
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
