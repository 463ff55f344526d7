package logger

import (
	"fmt"
	"strings"
)

// GormAdapter satisfies jinzhu/gorm's logger interface (Print(v ...interface{})).
// gorm passes ("sql", source, duration, query, values, rows) for statements
// and ("log", source, message...) for everything else.
type GormAdapter struct {
	L *Logger
}

func (g GormAdapter) Print(v ...interface{}) {
	if g.L == nil || len(v) == 0 {
		return
	}
	kind, _ := v[0].(string)
	switch {
	case kind == "sql" && len(v) >= 6:
		g.L.Debug("sql",
			"source", v[1],
			"duration", v[2],
			"query", v[3],
			FieldRows, v[5],
		)
	case kind == "error" && len(v) >= 3:
		g.L.Error("gorm error", "source", v[1], FieldError, fmt.Sprint(v[2:]...))
	default:
		parts := make([]string, 0, len(v))
		for _, p := range v[1:] {
			parts = append(parts, fmt.Sprint(p))
		}
		g.L.Debug("gorm", "message", strings.Join(parts, " "))
	}
}
