package http

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/courier-dashboard/internal/domain/entity"
)

//go:embed views/*.html
var viewsFS embed.FS

//go:embed static/*
var staticFS embed.FS

// StaticFS assets embebidos (CSS) para servir bajo /static.
func StaticFS() http.FileSystem {
	return http.FS(staticFS)
}

// usdPrinter formatea montos como lo hacía Intl.NumberFormat("en-US").
var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// NewViewEngine construye el motor de plantillas con las vistas embebidas y
// los helpers de formato que usan las páginas.
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err) // el embed garantiza que views/ existe
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")

	engine.AddFunc("price", FormatPrice)
	engine.AddFunc("datetime", FormatDateTime)
	engine.AddFunc("statusLabel", func(s entity.OrderStatus) string { return s.Label() })
	engine.AddFunc("statusClass", StatusClass)

	return engine
}

// FormatPrice renderiza el monto en USD (ej. "$45.50").
func FormatPrice(d decimal.Decimal) string {
	v, _ := d.Float64()
	return usdPrinter.Sprint(currency.NarrowSymbol(currency.USD.Amount(v)))
}

// FormatDateTime formato corto de fecha/hora para la UI (ej. "Nov 2, 2:30 PM").
// Acepta time.Time y *time.Time (estimatedDeliveryTime es opcional).
func FormatDateTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("Jan 2, 3:04 PM")
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format("Jan 2, 3:04 PM")
	default:
		return ""
	}
}

// StatusClass clase CSS del badge por estado.
func StatusClass(s entity.OrderStatus) string {
	switch s {
	case entity.StatusReadyForPickup:
		return "badge badge-ready"
	case entity.StatusOutForDelivery:
		return "badge badge-active"
	case entity.StatusDelivered:
		return "badge badge-done"
	case entity.StatusCancelled:
		return "badge badge-cancelled"
	default:
		return "badge badge-pending"
	}
}
