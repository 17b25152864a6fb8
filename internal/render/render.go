package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"scheduling-simulator/internal/responses"
)

const idleLabel = "idle"

// Schedule writes the title, Gantt chart and result table of one run.
func Schedule(w io.Writer, r responses.ScheduleResponse) {
	title := r.AlgorithmName
	if r.TimeQuantum > 0 {
		title = fmt.Sprintf("%s, time quantum %d", title, r.TimeQuantum)
	}
	outputTitle(w, title)
	Gantt(w, r.Timeline)
	outputSchedule(w, r)
}

// Comparison writes every run followed by the side-by-side summary and the
// advisory notes.
func Comparison(w io.Writer, c responses.ComparisonResponse) {
	for _, r := range c.Results {
		Schedule(w, r)
	}

	outputTitle(w, "Comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg waiting", "Avg turnaround", "Avg response"})
	for _, s := range c.Summary {
		table.Append([]string{
			s.AlgorithmName,
			formatFloat(s.AverageWaitingTime),
			formatFloat(s.AverageTurnAroundTime),
			formatFloat(s.AverageResponseTime),
		})
	}
	table.Render()

	_, _ = fmt.Fprintln(w)
	for _, line := range c.Advice {
		_, _ = fmt.Fprintln(w, "*", line)
	}
}

// Gantt writes the timeline as one row of cells, merging contiguous slices
// of the same process and marking gaps as idle.
func Gantt(w io.Writer, timeline []responses.IntervalResponse) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	cells := ganttCells(timeline)
	if len(cells) == 0 {
		_, _ = fmt.Fprintf(w, "(empty)\n\n")
		return
	}

	var labels, ticks strings.Builder
	labels.WriteString("|")
	for _, c := range cells {
		width := max(len(c.label)+2, len(strconv.Itoa(c.start))+1, 6)
		left := (width - len(c.label)) / 2
		labels.WriteString(strings.Repeat(" ", left))
		labels.WriteString(c.label)
		labels.WriteString(strings.Repeat(" ", width-left-len(c.label)))
		labels.WriteString("|")

		tick := strconv.Itoa(c.start)
		ticks.WriteString(tick)
		ticks.WriteString(strings.Repeat(" ", width+1-len(tick)))
	}
	ticks.WriteString(strconv.Itoa(cells[len(cells)-1].end))

	_, _ = fmt.Fprintln(w, labels.String())
	_, _ = fmt.Fprintln(w, ticks.String())
	_, _ = fmt.Fprintln(w)
}

type ganttCell struct {
	label      string
	start, end int
}

func ganttCells(timeline []responses.IntervalResponse) []ganttCell {
	var cells []ganttCell
	for _, iv := range timeline {
		label := "P" + strconv.Itoa(iv.ProcessId)
		if n := len(cells); n > 0 {
			last := &cells[n-1]
			if iv.Start > last.end {
				cells = append(cells, ganttCell{label: idleLabel, start: last.end, end: iv.Start})
			} else if last.label == label && last.end == iv.Start {
				last.end = iv.End
				continue
			}
		} else if iv.Start > 0 {
			cells = append(cells, ganttCell{label: idleLabel, start: 0, end: iv.Start})
		}
		cells = append(cells, ganttCell{label: label, start: iv.Start, end: iv.End})
	}
	return cells
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
	_, _ = fmt.Fprintln(w, " ", title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
}

func outputSchedule(w io.Writer, r responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Priority", "Start", "Completion", "Turnaround", "Waiting", "Response"})
	rows := make([][]string, 0, len(r.Details))
	for _, d := range r.Details {
		rows = append(rows, []string{
			strconv.Itoa(d.ProcessId),
			strconv.Itoa(d.ArrivalTime),
			strconv.Itoa(d.BurstTime),
			strconv.Itoa(d.Priority),
			strconv.Itoa(d.StartTime),
			strconv.Itoa(d.CompletionTime),
			strconv.Itoa(d.TurnAroundTime),
			strconv.Itoa(d.WaitingTime),
			strconv.Itoa(d.ResponseTime),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "",
		"Average\n" + formatFloat(r.AverageTurnAroundTime),
		"Average\n" + formatFloat(r.AverageWaitingTime),
		"Average\n" + formatFloat(r.AverageResponseTime),
	})
	table.Render()

	_, _ = fmt.Fprintf(w, "CPU utilization %.2f%%, throughput %.2f/t, context switches %d, idle %d of %d\n\n",
		r.CpuUtilization*100, r.CpuThroughput, r.ContextSwitches, r.IdleTime, r.TotalTime)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
