package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month of then, highlighting the days that have a
// region in the journal.
func (pp *PrettyPrint) Calendar(then time.Time, days []time.Time) {
	count := make([]int, DaysIn(then))
	for _, d := range days {
		if d.Year() == then.Year() && d.Month() == then.Month() {
			count[d.Day()-1]++
		}
	}
	pp.PrintMonthCount(then, count)
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)
	w := pp.out()

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(w, "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(w, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(w, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
