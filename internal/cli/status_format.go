package cli

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/themekit/internal/models"
	"github.com/opencode-ai/themekit/internal/style"
)

func formatErrorKind(kind style.ErrorKind) string {
	label, color := statusLabelForKind(kind)
	return colorize(formatStatusLabel(label, kind.String()), color)
}

func formatEventType(typ models.EventType) string {
	label, color := statusLabelForEvent(typ)
	return colorize(formatStatusLabel(label, string(typ)), color)
}

func statusLabelForKind(kind style.ErrorKind) (string, string) {
	switch kind {
	case style.NoError:
		return "OK", colorGreen
	case style.TemplateError, style.ResourceGenerationError:
		return "ERR", colorRed
	case style.ExportError:
		return "ERR", colorMagenta
	default:
		return "WARN", colorYellow
	}
}

func statusLabelForEvent(typ models.EventType) (string, string) {
	switch typ {
	case models.EventTypeStylesheetChanged:
		return "OK", colorGreen
	case models.EventTypeStyleChanged, models.EventTypeThemeChanged:
		return "SET", colorCyan
	case models.EventTypeGenerationFailed:
		return "ERR", colorRed
	default:
		return "WARN", colorYellow
	}
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}
