package quoting

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/odlagro/posv-api/internal/domain"
	"github.com/odlagro/posv-api/pkg/utils"
)

const (
	canvasWidth       = 1200
	margin            = 40.0
	headerHeight      = 190.0
	rowHeight         = 86.0
	tableHeaderHeight = 38.0
	footerHeight      = 190.0

	descriptionLimit = 60
	validityDays     = 10

	logoFile   = "logo_orcamento.png"
	outputFile = "orcamento.png"
)

// Colunas da tabela em frações da largura útil
var tableColumns = []struct {
	title string
	from  float64
	to    float64
}{
	{"Imagem", 0.00, 0.14},
	{"Descrição", 0.14, 0.58},
	{"Código", 0.58, 0.70},
	{"Un.", 0.70, 0.76},
	{"Qtd.", 0.76, 0.83},
	{"V. unit.", 0.83, 0.92},
	{"V. total", 0.92, 1.00},
}

var companyHeader = []string{
	"ODL AGRO COMERCIO E SERVICOS - EIRELI",
	"AV. HUGO LOPES NALY, Nº 113, GALPAO",
	"35200000 - Aimorés, MG",
	"CNPJ: 32.138.933/0001-36",
}

// Renderer desenha o orçamento em PNG. As fontes são as do projeto Go
// (Go Regular e Go Bold) embutidas no binário, dispensando fontes do
// sistema.
type Renderer struct {
	uploadsDir string
	httpClient *http.Client

	faceTitle     font.Face
	faceHeader    font.Face
	faceBody      font.Face
	faceSmall     font.Face
	faceSmallBold font.Face
	faceTotal     font.Face
}

func NewRenderer(uploadsDir string) (*Renderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a fonte regular")
	}

	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar a fonte negrito")
	}

	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size})
	}

	return &Renderer{
		uploadsDir: uploadsDir,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		faceTitle:     face(bold, 34),
		faceHeader:    face(bold, 16),
		faceBody:      face(regular, 15),
		faceSmall:     face(regular, 13),
		faceSmallBold: face(bold, 13),
		faceTotal:     face(bold, 22),
	}, nil
}

func (r *Renderer) Render(ctx context.Context, quote *domain.Quote, now time.Time) (string, error) {
	rows := len(quote.Items)
	if rows < 1 {
		rows = 1
	}

	height := headerHeight + tableHeaderHeight + float64(rows)*rowHeight + footerHeight
	dc := gg.NewContext(canvasWidth, int(height))

	dc.SetHexColor("#ffffff")
	dc.Clear()

	r.drawLogo(dc)
	r.drawHeader(dc, now)
	bottom := r.drawTable(ctx, dc, quote)
	boxY := r.drawTotals(dc, quote, bottom)
	r.drawValidity(dc, now, boxY)

	if err := os.MkdirAll(r.uploadsDir, 0o755); err != nil {
		return "", errors.Wrap(err, "erro ao criar o diretório de uploads")
	}

	path := filepath.Join(r.uploadsDir, outputFile)
	if err := dc.SavePNG(path); err != nil {
		return "", errors.Wrap(err, "erro ao gravar o PNG do orçamento")
	}

	return path, nil
}

// drawLogo usa a logo enviada na tela de configurações, se existir.
func (r *Renderer) drawLogo(dc *gg.Context) {
	file, err := os.Open(filepath.Join(r.uploadsDir, logoFile))
	if err != nil {
		return
	}
	defer file.Close()

	logo, _, err := image.Decode(file)
	if err != nil {
		return
	}

	dc.DrawImage(fitImage(logo, 260, 120), int(margin), 30)
}

func (r *Renderer) drawHeader(dc *gg.Context, now time.Time) {
	dc.SetHexColor("#000000")

	y0 := 32.0
	dc.SetFontFace(r.faceSmall)
	for i, line := range companyHeader {
		dc.DrawStringAnchored(line, canvasWidth-margin, y0+float64(i)*18, 1, 1)
	}

	dc.SetFontFace(r.faceSmallBold)
	dc.DrawStringAnchored("Data: "+now.Format("02/01/2006"), canvasWidth/2, y0, 0.5, 1)

	dc.SetFontFace(r.faceTitle)
	dc.DrawStringAnchored("ORÇAMENTO", canvasWidth/2, 60, 0.5, 1)
}

// drawTable desenha o cabeçalho e uma linha por item. Devolve o Y logo
// abaixo da última linha.
func (r *Renderer) drawTable(ctx context.Context, dc *gg.Context, quote *domain.Quote) float64 {
	tableX := margin
	tableY := headerHeight
	tableW := float64(canvasWidth) - margin*2

	dc.SetHexColor("#000000")
	dc.SetLineWidth(2)
	dc.DrawRectangle(tableX, tableY, tableW, tableHeaderHeight)
	dc.Stroke()

	dc.SetFontFace(r.faceHeader)
	for _, col := range tableColumns {
		x1 := tableX + tableW*col.from
		dc.DrawLine(x1, tableY, x1, tableY+tableHeaderHeight)
		dc.Stroke()
		dc.DrawStringAnchored(col.title, x1+8, tableY+10, 0, 1)
	}

	y := tableY + tableHeaderHeight
	for _, item := range quote.Items {
		dc.SetLineWidth(1)
		dc.DrawRectangle(tableX, y, tableW, rowHeight)
		dc.Stroke()

		for _, col := range tableColumns[1:] {
			x1 := tableX + tableW*col.from
			dc.DrawLine(x1, y, x1, y+rowHeight)
			dc.Stroke()
		}

		r.drawItemImage(ctx, dc, item.ImageURL, tableX+10, y+10, tableW)

		desc := item.Name
		if len([]rune(desc)) > descriptionLimit {
			desc = string([]rune(desc)[:descriptionLimit-3]) + "..."
		}

		dc.SetHexColor("#000000")
		dc.SetFontFace(r.faceBody)
		dc.DrawStringAnchored(desc, tableX+tableW*0.14+10, y+12, 0, 1)
		dc.DrawStringAnchored(item.SKU, tableX+tableW*0.58+8, y+12, 0, 1)
		dc.DrawStringAnchored(item.Unit, tableX+tableW*0.70+8, y+12, 0, 1)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", item.Quantity), tableX+tableW*0.76+8, y+12, 0, 1)
		dc.DrawStringAnchored(utils.FormatBRL(item.UnitPrice), tableX+tableW*0.83+8, y+12, 0, 1)
		dc.DrawStringAnchored(utils.FormatBRL(item.LineTotal), tableX+tableW*0.92+8, y+12, 0, 1)

		y += rowHeight
	}

	return y
}

// drawItemImage baixa a miniatura do produto; qualquer falha vira o
// placeholder "SEM FOTO".
func (r *Renderer) drawItemImage(ctx context.Context, dc *gg.Context, url string, x, y, tableW float64) {
	cellW := tableW * 0.14

	if pic := r.fetchThumbnail(ctx, url); pic != nil {
		dc.DrawImage(fitImage(pic, int(cellW)-20, int(rowHeight)-20), int(x), int(y))
		return
	}

	dc.SetHexColor("#cccccc")
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, cellW-30, rowHeight-20)
	dc.Stroke()

	dc.SetHexColor("#777777")
	dc.SetFontFace(r.faceSmall)
	dc.DrawStringAnchored("SEM", x+8, y+22, 0, 1)
	dc.DrawStringAnchored("FOTO", x+8, y+39, 0, 1)
}

func (r *Renderer) fetchThumbnail(ctx context.Context, url string) image.Image {
	if url == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil
	}

	pic, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil
	}
	return pic
}

func (r *Renderer) drawTotals(dc *gg.Context, quote *domain.Quote, tableBottom float64) float64 {
	boxW := 460.0
	boxX := float64(canvasWidth) - margin - boxW
	boxY := tableBottom + 24

	dc.SetHexColor("#000000")
	dc.SetLineWidth(2)
	dc.DrawRectangle(boxX, boxY, boxW, 120)
	dc.Stroke()

	xRight := boxX + boxW - 16

	dc.SetFontFace(r.faceHeader)
	dc.DrawStringAnchored("Subtotal (produtos)", boxX+16, boxY+14, 0, 1)
	dc.DrawStringAnchored(utils.FormatBRL(quote.Subtotal), xRight, boxY+14, 1, 1)

	shippingLabel := "Frete"
	if quote.ShippingLabel != "" {
		shippingLabel += " - " + quote.ShippingLabel
	}
	dc.DrawStringAnchored(shippingLabel, boxX+16, boxY+48, 0, 1)
	dc.DrawStringAnchored(utils.FormatBRL(quote.Shipping), xRight, boxY+48, 1, 1)

	dc.SetHexColor("#f1f5f9")
	dc.DrawRectangle(boxX, boxY+78, boxW, 42)
	dc.Fill()

	dc.SetHexColor("#000000")
	dc.SetLineWidth(2)
	dc.DrawRectangle(boxX, boxY+78, boxW, 42)
	dc.Stroke()

	dc.SetFontFace(r.faceTotal)
	dc.DrawStringAnchored("TOTAL GERAL", boxX+16, boxY+88, 0, 1)
	dc.DrawStringAnchored(utils.FormatBRL(quote.Total), xRight, boxY+88, 1, 1)

	return boxY
}

func (r *Renderer) drawValidity(dc *gg.Context, now time.Time, boxY float64) {
	until := now.AddDate(0, 0, validityDays).Format("02/01/2006")

	dc.SetHexColor("#333333")
	dc.SetFontFace(r.faceSmall)
	dc.DrawStringAnchored(fmt.Sprintf("Preços válidos até %s (%d dias).", until, validityDays), margin, boxY+140, 0, 1)
}

// fitImage reduz a imagem para caber em maxW x maxH mantendo a proporção.
// Imagens menores não são ampliadas.
func fitImage(src image.Image, maxW, maxH int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}

	scale := 1.0
	if sw := float64(maxW) / float64(w); sw < scale {
		scale = sw
	}
	if sh := float64(maxH) / float64(h); sh < scale {
		scale = sh
	}
	if scale >= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
