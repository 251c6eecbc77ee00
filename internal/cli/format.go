package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/dto"
)

const titleWidth = 30

func printTasks(w io.Writer, tasks []dto.TaskDTO) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	fmt.Fprintf(w, "\n%-38s %-30s %-10s %-15s %-10s\n", "ID", "Title", "Assignee", "Status", "Priority")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, task := range tasks {
		fmt.Fprintf(w, "%-38s %-30s %-10s %-15s %-10s\n",
			task.ID, truncate(task.Title, titleWidth), task.Assignee, task.Status, task.Priority)
	}
}

func printStats(w io.Writer, stats *dto.StatsDTO) {
	fmt.Fprintln(w, "\n📊 TaskFlow Statistics")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total Tasks: %d\n", stats.Total)

	fmt.Fprintln(w, "\nBy Status:")
	for _, c := range stats.ByStatus {
		fmt.Fprintf(w, "  %-15s %3d\n", c.Key, c.Value)
	}

	fmt.Fprintln(w, "\nBy Assignee:")
	for _, c := range stats.ByAssignee {
		fmt.Fprintf(w, "  %-15s %3d\n", c.Key, c.Value)
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
