package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/namankhandelwal900-boop/trackify/internal/domain"
)

// Report aggregation over planner entries. These are pure functions so the
// demo session's in-memory buffer and the CSV store share them.

type Report struct {
	Label      string
	TotalHours int
	Productive int
	Score      int
	PerDay     []DayCount
	HourDist   []HourCount
}

type DayCount struct {
	Label string
	Hours int
}

type HourCount struct {
	Hour    int
	Entries int
}

type HourScore struct {
	Hour       int
	Label      string
	Total      int
	Productive int
	Score      float64
}

type BucketScore struct {
	Name       string
	AvgScore   float64
	TotalHours int
}

type Insights struct {
	BestHour    HourScore
	WorstHour   HourScore
	FocusWindow []string
	Hours       []HourScore
	Buckets     []BucketScore
	BestBucket  string
	WorstBucket string
}

// HourLabel renders an hour of day as a 12-hour clock label.
func HourLabel(h int) string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return fmt.Sprintf("%d AM", h)
	case h == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", h-12)
	}
}

// HourRangeLabel is the planner slot label, e.g. "9 AM – 10 AM".
func HourRangeLabel(h int) string {
	return HourLabel(h) + " – " + HourLabel((h+1)%24)
}

// HourBucket groups hours into the four times of day used by insights.
func HourBucket(h int) string {
	switch {
	case h <= 5:
		return "Night"
	case h <= 11:
		return "Morning"
	case h <= 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}

func score(productive, total int) int {
	if total == 0 {
		return 0
	}
	return productive * 100 / total
}

// WeeklyReport aggregates the most recent ISO week present in the entries.
// ok is false when there are no entries.
func WeeklyReport(entries []domain.ActivityEntry) (Report, bool) {
	if len(entries) == 0 {
		return Report{}, false
	}

	bestYear, bestWeek := 0, 0
	for _, e := range entries {
		y, w := e.Date.ISOWeek()
		if y > bestYear || (y == bestYear && w > bestWeek) {
			bestYear, bestWeek = y, w
		}
	}

	var week []domain.ActivityEntry
	for _, e := range entries {
		if y, w := e.Date.ISOWeek(); y == bestYear && w == bestWeek {
			week = append(week, e)
		}
	}

	r := summarize(week)
	r.Label = fmt.Sprintf("Week %d, %d", bestWeek, bestYear)
	r.PerDay = perWeekday(week)
	return r, true
}

// MonthlyReport aggregates the most recent calendar month present in the
// entries.
func MonthlyReport(entries []domain.ActivityEntry) (Report, bool) {
	if len(entries) == 0 {
		return Report{}, false
	}

	var best time.Time
	for _, e := range entries {
		m := time.Date(e.Date.Year(), e.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		if m.After(best) {
			best = m
		}
	}

	var month []domain.ActivityEntry
	for _, e := range entries {
		if e.Date.Year() == best.Year() && e.Date.Month() == best.Month() {
			month = append(month, e)
		}
	}

	r := summarize(month)
	r.Label = best.Format("January 2006")
	r.PerDay = perMonthDay(month)
	return r, true
}

func summarize(entries []domain.ActivityEntry) Report {
	var r Report
	r.TotalHours = len(entries)
	for _, e := range entries {
		if e.Productive {
			r.Productive++
		}
	}
	r.Score = score(r.Productive, r.TotalHours)
	r.HourDist = hourDistribution(entries)
	return r
}

func perWeekday(entries []domain.ActivityEntry) []DayCount {
	counts := map[time.Weekday]int{}
	for _, e := range entries {
		counts[e.Date.Weekday()]++
	}
	// Monday-first, matching the week boundary.
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	var out []DayCount
	for _, wd := range order {
		if n := counts[wd]; n > 0 {
			out = append(out, DayCount{Label: wd.String(), Hours: n})
		}
	}
	return out
}

func perMonthDay(entries []domain.ActivityEntry) []DayCount {
	counts := map[int]int{}
	for _, e := range entries {
		counts[e.Date.Day()]++
	}
	days := make([]int, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Ints(days)
	out := make([]DayCount, 0, len(days))
	for _, d := range days {
		out = append(out, DayCount{Label: fmt.Sprintf("%d", d), Hours: counts[d]})
	}
	return out
}

func hourDistribution(entries []domain.ActivityEntry) []HourCount {
	counts := map[int]int{}
	for _, e := range entries {
		counts[e.Hour]++
	}
	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	out := make([]HourCount, 0, len(hours))
	for _, h := range hours {
		out = append(out, HourCount{Hour: h, Entries: counts[h]})
	}
	return out
}

// BuildInsights derives the focus analysis: per-hour productivity, best and
// worst hours, a top-3 focus window, and time-of-day bucket averages.
func BuildInsights(entries []domain.ActivityEntry) (Insights, bool) {
	type agg struct{ total, productive int }
	byHour := map[int]*agg{}
	for _, e := range entries {
		a := byHour[e.Hour]
		if a == nil {
			a = &agg{}
			byHour[e.Hour] = a
		}
		a.total++
		if e.Productive {
			a.productive++
		}
	}
	if len(byHour) == 0 {
		return Insights{}, false
	}

	hours := make([]HourScore, 0, len(byHour))
	for h, a := range byHour {
		hours = append(hours, HourScore{
			Hour:       h,
			Label:      HourLabel(h),
			Total:      a.total,
			Productive: a.productive,
			Score:      float64(a.productive) / float64(a.total) * 100,
		})
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Hour < hours[j].Hour })

	ranked := make([]HourScore, len(hours))
	copy(ranked, hours)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	ins := Insights{
		BestHour:  ranked[0],
		WorstHour: ranked[len(ranked)-1],
		Hours:     hours,
	}
	for i := 0; i < len(ranked) && i < 3; i++ {
		ins.FocusWindow = append(ins.FocusWindow, ranked[i].Label)
	}

	type bagg struct {
		scoreSum float64
		hours    int
		total    int
	}
	byBucket := map[string]*bagg{}
	for _, hs := range hours {
		b := byBucket[HourBucket(hs.Hour)]
		if b == nil {
			b = &bagg{}
			byBucket[HourBucket(hs.Hour)] = b
		}
		b.scoreSum += hs.Score
		b.hours++
		b.total += hs.Total
	}
	for _, name := range []string{"Night", "Morning", "Afternoon", "Evening"} {
		b, ok := byBucket[name]
		if !ok {
			continue
		}
		ins.Buckets = append(ins.Buckets, BucketScore{
			Name:       name,
			AvgScore:   b.scoreSum / float64(b.hours),
			TotalHours: b.total,
		})
	}

	best, worst := ins.Buckets[0], ins.Buckets[0]
	for _, b := range ins.Buckets[1:] {
		if b.AvgScore > best.AvgScore {
			best = b
		}
		if b.AvgScore < worst.AvgScore {
			worst = b
		}
	}
	ins.BestBucket = best.Name
	ins.WorstBucket = worst.Name

	return ins, true
}

// Streaks returns the run of consecutive active days ending at the most
// recent entry, and the longest such run overall.
func Streaks(entries []domain.ActivityEntry) (current, longest int) {
	seen := map[time.Time]bool{}
	for _, e := range entries {
		seen[e.Date] = true
	}
	if len(seen) == 0 {
		return 0, 0
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	current, longest = 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return current, longest
}
