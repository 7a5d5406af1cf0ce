package pdf

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formatea números con separadores pt-BR (1.234,50).
var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatMoney formatea un monto en reales; "-" si no hay valor.
func FormatMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	fixed := d.Decimal.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// groupThousands agrega "." cada tres dígitos desde la derecha.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCount formatea cantidades enteras con separador de miles y signo explícito si signed.
func FormatCount(n int64, signed bool) string {
	s := printer.Sprintf("%d", n)
	if signed && n > 0 {
		return "+" + s
	}
	return s
}

func formatDays(n int64) string {
	if n == 1 || n == -1 {
		return strconv.FormatInt(n, 10) + " dia"
	}
	return strconv.FormatInt(n, 10) + " dias"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
