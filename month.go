package currency

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// StartMonth is the first month of every collected history.
var StartMonth = Month{Year: 2000, Month: time.January}

type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func ParseMonth(str string) (Month, error) {
	t, err := time.Parse(monthLayout, str)

	if err != nil {
		return Month{}, fmt.Errorf("value %s is not valid month: %w", str, err)
	}

	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay returns midnight UTC of the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}

	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) AddMonths(n int) Month {
	index := m.index() + n

	return Month{Year: index / 12, Month: time.Month(index%12 + 1)}
}

func (m Month) After(other Month) bool {
	return m.index() > other.index()
}

func (m Month) index() int {
	return m.Year*12 + int(m.Month) - 1
}

// MonthsBetween counts the months from start through end, both included.
func MonthsBetween(start, end Month) int {
	if start.After(end) {
		return 0
	}

	return end.index() - start.index() + 1
}
