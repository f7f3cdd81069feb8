package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/samsarahq/coerce/collection"
	"github.com/samsarahq/coerce/evaluator"
	"github.com/samsarahq/coerce/logger"
)

type Message struct {
	Id        int64
	Text      string
	reactions []string
}

func (m *Message) Reactions() []string { return m.reactions }

func (m *Message) Summary(limit int) string {
	if len(m.Text) <= limit {
		return m.Text
	}
	return m.Text[:limit] + "..."
}

func variables() map[string]interface{} {
	return map[string]interface{}{
		"ids":   []int64{4, 8, 15, 16, 23, 42},
		"flags": [3]bool{true, false, true},
		"tags":  []string{"go", "reflect", "lists"},
		"messages": []*Message{
			{Id: 1, Text: "hello there", reactions: []string{":)", ":)"}},
			{Id: 2, Text: "arrays answer list methods", reactions: []string{":("}},
		},
		"seen": collection.ArrayListOf("go"),
	}
}

var examples = []string{
	`#ids.size()`,
	`#tags.indexOf("lists")`,
	`#ids.subList(1, 3)`,
	`#flags.lastIndexOf(true)`,
	`#tags.contains("reflect")`,
	`#tags.get("2")`,
	`#messages[1].summary(6)`,
	`#messages[0].reactions().size()`,
	`#seen.size()`,
	`#tags.add("oops")`,
}

func main() {
	log := logger.New()
	e := evaluator.New(evaluator.WithLogger(log))
	vars := variables()

	exprs := os.Args[1:]
	if len(exprs) == 0 {
		exprs = examples
	}
	if len(exprs) == 1 && exprs[0] == "-" {
		exprs = nil
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				exprs = append(exprs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			log.Error("reading stdin", "err", err)
			os.Exit(1)
		}
	}

	for _, expr := range exprs {
		result, err := e.Evaluate(expr, vars)
		if err != nil {
			log.Warn("evaluation failed", "expr", expr, "err", err)
			continue
		}
		fmt.Printf("%s => %s", expr, spew.Sdump(result))
	}
}
