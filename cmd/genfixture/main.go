// Command genfixture writes a synthetic case-announcement page in the source
// site's markup shape, for local runs of runonce and for test fixtures. The
// announcement lines go through the actual domain classifier so the fixture
// is guaranteed to parse the way real pages do.
//
// Usage:
//
//	go run ./cmd/genfixture -out testdata/cases.html -days 30
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/campus-case-forecast/internal/domain"
)

var countWords = []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}

var templates = []string{
	"%s USF Tampa students have tested positive",
	"%s USF Tampa employees have tested positive",
	"%s St. Petersburg campus students have tested positive",
	"%s St. Petersburg campus employees have tested positive",
	"%s USF Health students have tested positive",
	"%s USF Health residents have tested positive",
}

func main() {
	out := flag.String("out", "cases.html", "output HTML path")
	days := flag.Int("days", 30, "number of date headers to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	today := time.Now().UTC()

	var b strings.Builder
	b.WriteString("<html><body><div class=\"article-body\">\n")

	// Newest dates first, matching the live page.
	for d := 0; d < *days; d++ {
		date := today.AddDate(0, 0, -d)
		fmt.Fprintf(&b, "<h3>%s</h3>\n<ul>\n", date.Format("January 2"))

		items := 1 + rng.Intn(3)
		for i := 0; i < items; i++ {
			word := countWords[rng.Intn(len(countWords))]
			line := fmt.Sprintf(templates[rng.Intn(len(templates))], capitalize(word))
			if _, ok := domain.ParseAnnouncement(line); !ok {
				log.Fatalf("template produced unclassifiable line: %q", line)
			}
			fmt.Fprintf(&b, "  <li>%s.</li>\n", line)
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div></body></html>\n")

	if err := os.WriteFile(*out, []byte(b.String()), 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%d date headers)", *out, *days)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
