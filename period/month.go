package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month é um mês de referência (YYYY-MM). Month pode ficar fora de 1..12:
// o formato é a única validação, e Range normaliza via time.Date.
type Month struct {
	Year  int
	Month int
}

func ParseMonth(s string) (Month, bool) {
	s = strings.TrimSpace(s)
	if !monthPattern.MatchString(s) {
		return Month{}, false
	}
	y, _ := strconv.Atoi(s[:4])
	m, _ := strconv.Atoi(s[5:])
	return Month{Year: y, Month: m}, true
}

// ResolveMonth devolve nil (sem filtro) para entrada ausente ou malformada.
func ResolveMonth(s string) *Month {
	m, ok := ParseMonth(s)
	if !ok {
		return nil
	}
	return &m
}

// Range devolve o intervalo [gte, lt) em UTC.
func (m Month) Range() (gte, lt time.Time) {
	gte = time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
	ny, nm := m.Year, m.Month+1
	if m.Month == 12 {
		ny, nm = m.Year+1, 1
	}
	lt = time.Date(ny, time.Month(nm), 1, 0, 0, 0, 0, time.UTC)
	return gte, lt
}

// Start é o primeiro instante do mês, usado para gravar referenceMonth.
func (m Month) Start() time.Time {
	gte, _ := m.Range()
	return gte
}

func (m Month) Contains(t time.Time) bool {
	gte, lt := m.Range()
	t = t.UTC()
	return !t.Before(gte) && t.Before(lt)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}
