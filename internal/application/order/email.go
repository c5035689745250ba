package order

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path"

	"github.com/lamiarosa/store-api/internal/domain"
	"github.com/lamiarosa/store-api/internal/infrastructure/mail"
)

type emailRow struct {
	CID       string
	Title     string
	Qty       int
	LineTotal string
}

type emailData struct {
	Rows  []emailRow
	Total string
}

var confirmationTmpl = template.Must(template.New("order-confirmation").Parse(`
<div style="background:#f5f5f5; padding:30px 0; font-family:Arial;">
  <div style="max-width:600px; margin:auto; background:#ffffff; border-radius:12px; overflow:hidden;">

    <div style="background:#111; color:#fff; padding:20px; text-align:center;">
      <h1 style="margin:0;">La Mia Rosa</h1>
    </div>

    <div style="padding:25px;">
      <h2>Thank you for your order 💖</h2>

      <table width="100%" cellspacing="0" cellpadding="0">
        {{range .Rows}}
        <tr>
          <td style="padding:12px 0;">
            {{if .CID}}<img src="cid:{{.CID}}" width="70" height="70"
              style="border-radius:8px; object-fit:cover;" />{{end}}
          </td>
          <td style="padding:12px 10px; font-family:Arial;">
            <strong>{{.Title}}</strong><br/>
            Quantity: {{.Qty}}
          </td>
          <td style="padding:12px 0; font-family:Arial; text-align:right;">
            ₺{{.LineTotal}}
          </td>
        </tr>
        {{end}}
      </table>

      <hr style="margin:20px 0; border:none; border-top:1px solid #eee;" />

      <table width="100%">
        <tr>
          <td>Total</td>
          <td style="text-align:right;"><strong>₺{{.Total}}</strong></td>
        </tr>
      </table>

      <div style="margin-top:25px; padding:15px; background:#fafafa; border-radius:8px;">
        <strong>Shipping information</strong>
        <p style="margin:8px 0 0;">
          Orders are delivered within <strong>5–7 business days</strong>.<br/>
          You will receive a tracking number once shipped.
        </p>
      </div>

    </div>
  </div>
</div>
`))

// renderConfirmation builds the confirmation HTML plus the inline product
// images. Items whose image cannot be fetched render without a thumbnail.
func (s *service) renderConfirmation(ctx context.Context, o *domain.Order) (string, []mail.InlineImage) {
	var inline []mail.InlineImage
	rows := make([]emailRow, 0, len(o.Items))
	for i, item := range o.Items {
		row := emailRow{
			Title:     item.Title,
			Qty:       item.Qty,
			LineTotal: fmt.Sprintf("%.2f", item.Price*float64(item.Qty)),
		}
		if item.Image != "" {
			if data, err := s.fetchImage(ctx, item.Image); err == nil {
				row.CID = fmt.Sprintf("product%d%s", i, path.Ext(item.Image))
				inline = append(inline, mail.InlineImage{Name: row.CID, Content: data})
			} else {
				slog.Warn("could not fetch product image for confirmation email", "key", item.Image, "err", err)
			}
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	data := emailData{Rows: rows, Total: fmt.Sprintf("%.2f", o.Total)}
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		// The template is static and the data plain values; this cannot fail
		// at runtime, but log rather than panic if it ever does.
		slog.Error("render confirmation email", "err", err)
		return "", nil
	}
	return buf.String(), inline
}

func (s *service) sendConfirmationEmail(ctx context.Context, to string, o *domain.Order) {
	html, inline := s.renderConfirmation(ctx, o)
	if err := s.mailer.Send(to, "Order confirmation – La Mia Rosa", html, inline); err != nil {
		slog.Error("order confirmation email failed", "order_id", o.OrderID, "err", err)
	}
}

func (s *service) fetchImage(ctx context.Context, key string) ([]byte, error) {
	body, _, err := s.images.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}
