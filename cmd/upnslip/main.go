// Command upnslip renders UPN payment slips from JSON order data without a
// database, for checking slips against a banking app.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/soldoshop/upn-nalog/pkg/logger"
	"github.com/soldoshop/upn-nalog/pkg/slippdf"
	"github.com/soldoshop/upn-nalog/pkg/upn"
	"github.com/soldoshop/upn-nalog/pkg/upnqr"
	"github.com/soldoshop/upn-nalog/pkg/utils"
	"github.com/urfave/cli/v2"
)

// slipInput is the JSON document read by the render command.
type slipInput struct {
	Order        upn.Order     `json:"order"`
	Merchant     upn.Merchant  `json:"merchant"`
	Overrides    upn.Overrides `json:"overrides"`
	Instructions string        `json:"instructions"`
}

func main() {
	logger.Setup("upnslip", "development", false)
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("upnslip failed")
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "upnslip",
		Usage:     "render UPN payment slips",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: io.Discard,
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "build a slip from an order and merchant JSON document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "JSON input file, - for stdin", Value: "-"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "png, pdf, text or json", Value: "text"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, - for stdout", Value: "-"},
					&cli.StringFlag{Name: "locale", Usage: "BCP 47 locale of templates and labels", Value: "sl-SI"},
					&cli.IntFlag{Name: "size", Usage: "QR image size in pixels", Value: upnqr.DefaultSize},
				},
				Action: renderAction,
			},
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for OPERATOR_PASSWORD_HASH",
				ArgsUsage: "PASSWORD",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one PASSWORD argument")
					}
					hash, err := utils.HashPassword(c.Args().First())
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, hash)
					return err
				},
			},
		},
	}
}

func renderAction(c *cli.Context) error {
	in, err := readInput(c.App.Reader, c.String("input"))
	if err != nil {
		return err
	}

	locale := c.String("locale")
	slip, err := upn.NewBuilder(upn.LocaleDefaults(locale)).Build(in.Order, in.Merchant, in.Overrides)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	switch format := strings.ToLower(c.String("format")); format {
	case "text":
		out.WriteString(upn.QRText(slip))
	case "json":
		enc := json.NewEncoder(&out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			upn.PaymentSlip
			Amount string    `json:"amount"`
			Rows   []upn.Row `json:"rows"`
		}{slip, slip.AmountDecimal(), upn.Describe(slip, locale)}); err != nil {
			return err
		}
	case "png":
		img, err := upnqr.NewRenderer(c.Int("size")).Render(c.Context, slip)
		if err != nil {
			return err
		}
		out.Write(img)
	case "pdf":
		img, err := upnqr.NewRenderer(c.Int("size")).Render(c.Context, slip)
		if err != nil {
			log.Warn().Err(err).Msg("QR image left out of the PDF")
		}
		if err := slippdf.Write(&out, slippdf.Document{
			Title:        "UPN Nalog",
			Locale:       locale,
			Instructions: in.Instructions,
			Rows:         upn.Describe(slip, locale),
			Amount:       slip.AmountDecimal(),
			DueDate:      slip.DueDate.Format("02.01.2006"),
			QR:           img,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (use png, pdf, text or json)", format)
	}

	return writeOutput(c.App.Writer, c.String("out"), out.Bytes())
}

func readInput(stdin io.Reader, path string) (*slipInput, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var in slipInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return &in, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
