package render

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/superhedge/listingctl/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)

	labelStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgWhite)
	amountStyle  = color.New(color.FgHiWhite, color.Bold)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	absentStyle  = color.New(color.FgYellow)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatAmount renders minor units as "10,500.00". Nil renders as "-".
func FormatAmount(v *big.Int, decimals int32) string {
	if v == nil {
		return "-"
	}

	fixed := domain.FormatMinorUnits(v, decimals, 2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + printer.Sprintf("%d", n) + "." + frac
}

// FormatCount renders an integer with thousands separators. Nil renders as "-".
func FormatCount(v *big.Int) string {
	if v == nil {
		return "-"
	}
	if !v.IsInt64() {
		return v.String()
	}
	return printer.Sprintf("%d", v.Int64())
}

// Title turns an enum value such as "REJECTED_BY_USER" into "Rejected By User"
func Title(s string) string {
	return titler.String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}
