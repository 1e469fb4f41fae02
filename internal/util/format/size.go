// Package format renders sizes, rates and durations for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/timelapsetech/videocalc-db/internal/model"
)

var printer = message.NewPrinter(language.English)

// FileSize renders a megabyte count in the largest sensible unit. Decimal
// mode divides by 1000 (GB, TB); binary mode divides by 1024 (GiB, TiB).
// Sizes under one GB/GiB are shown as whole megabytes.
func FileSize(mb float64, binary bool) string {
	base, gUnit, tUnit := 1000.0, "GB", "TB"
	if binary {
		base, gUnit, tUnit = 1024.0, "GiB", "TiB"
	}
	g := mb / base
	switch {
	case g < 1:
		return strconv.FormatFloat(math.Round(mb), 'f', 0, 64) + " MB"
	case g < base:
		return fixed2(g) + " " + gUnit
	default:
		return fixed2(g/base) + " " + tUnit
	}
}

// Megabytes renders mb with thousands separators, e.g. "22,500 MB".
func Megabytes(mb float64) string {
	if mb == math.Trunc(mb) {
		return printer.Sprintf("%.0f MB", mb)
	}
	return printer.Sprintf("%.2f MB", mb)
}

// Mbps renders a bitrate without trailing zeros, e.g. "7.5 Mbps".
func Mbps(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " Mbps"
}

// Duration renders clock fields as "1h 5m 0s".
func Duration(d model.Duration) string {
	return strconv.Itoa(d.Hours) + "h " + strconv.Itoa(d.Minutes) + "m " + strconv.Itoa(d.Seconds) + "s"
}

func fixed2(v float64) string {
	var buf [24]byte
	return string(strconv.AppendFloat(buf[:0], v, 'f', 2, 64))
}

var sizeUnits = map[string]float64{
	"":    1,
	"MB":  1,
	"GB":  1000,
	"TB":  1000 * 1000,
	"GIB": 1024,
	"TIB": 1024 * 1024,
}

// ParseSize reads a storage size such as "512GB", "2 TiB" or "750" (MB) and
// returns it in megabytes.
func ParseSize(s string) (float64, error) {
	t := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	i := strings.IndexFunc(t, func(r rune) bool { return (r < '0' || r > '9') && r != '.' })
	num, unit := t, ""
	if i >= 0 {
		num, unit = t[:i], t[i:]
	}
	mult, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("invalid size %q: unknown unit %q", s, unit)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return v * mult, nil
}
