// Command docsplit atomizes a text or Markdown document into structural
// blocks and, optionally, balances those blocks into N roughly equal
// sections at structurally valid cut points.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"

	"github.com/jcorbin/docsplit/docatom"
	"github.com/jcorbin/docsplit/docpart"
	"github.com/jcorbin/docsplit/internal/docrender"
	"github.com/jcorbin/docsplit/internal/docutil"
)

// Exit codes.
const (
	exitOK = iota
	exitInfeasiblePartition
	exitInvalidArgument
	exitInvariantViolation
)

var errInvalidArgument = errors.New("docsplit: invalid argument")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	file string
	text string

	split                int
	splitRelax           bool
	splitNoPseudo        bool
	splitNoHR            bool
	splitNoListTableCode bool
	splitJSONOut         string

	mermaidOut      string
	mermaidDir      string
	mermaidNoPseudo bool
	mermaidStats    bool

	renderHTMLDir string

	noPrint    bool
	maxPreview int
	logPrefix  string
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("docsplit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.file, "file", "", "path to input text/markdown file")
	fs.StringVar(&f.text, "text", "", "inline text (alternative to --file)")

	fs.IntVar(&f.split, "split", 0, "split into N sections (choose N-1 cut boundaries)")
	fs.BoolVar(&f.splitRelax, "split-relax", false, "relax candidate cuts if needed (allow list/table/code, then paragraphs)")
	fs.BoolVar(&f.splitNoPseudo, "split-no-pseudo", false, "do not use pseudo headings (**Title**) as cut candidates")
	fs.BoolVar(&f.splitNoHR, "split-no-hr", false, "do not use horizontal rules (---) as cut candidates")
	fs.BoolVar(&f.splitNoListTableCode, "split-no-list-table-code", false, "never admit list/table/code-fence atoms as cut candidates, even under --split-relax")
	fs.StringVar(&f.splitJSONOut, "split-json-out", "", "write the split result (N, objective, cuts, segments) to this JSON path")

	fs.StringVar(&f.mermaidOut, "mermaid-out", "", "write a Mermaid section diagram to this path")
	fs.StringVar(&f.mermaidDir, "mermaid-dir", "TD", "mermaid flowchart direction: TD, LR, RL, BT")
	fs.BoolVar(&f.mermaidNoPseudo, "mermaid-no-pseudo", false, "exclude pseudo headings from the diagram")
	fs.BoolVar(&f.mermaidStats, "mermaid-stats", false, "include rough section stats in node labels")

	fs.StringVar(&f.renderHTMLDir, "render-html-dir", "", "render each segment's source to an HTML file in this directory")

	fs.BoolVar(&f.noPrint, "no-print", false, "do not print the atoms table")
	fs.IntVar(&f.maxPreview, "max-preview", 60, "max preview words per atom in the debug table")
	fs.StringVar(&f.logPrefix, "log-prefix", "docsplit: ", "prefix for diagnostic log lines")

	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	splitSet := false
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "split" {
			splitSet = true
		}
	})
	if splitSet && f.split < 1 {
		return flags{}, fmt.Errorf("%w: --split must be at least 1, got %v", errInvalidArgument, f.split)
	}
	if f.file == "" && f.text == "" {
		return flags{}, fmt.Errorf("%w: provide --file or --text", errInvalidArgument)
	}
	if f.file != "" && f.text != "" {
		return flags{}, fmt.Errorf("%w: --file and --text are mutually exclusive", errInvalidArgument)
	}
	return f, nil
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitInvalidArgument
	}

	logger := log.New(docutil.PrefixWriter(f.logPrefix, stderr), "", log.LstdFlags)

	defer func() {
		if r := recover(); r != nil {
			var invErr *docatom.InvariantError
			if errors.As(asError(r), &invErr) {
				logger.Printf("%v", invErr)
				code = exitInvariantViolation
				return
			}
			panic(r)
		}
	}()

	text, err := readInput(f)
	if err != nil {
		logger.Printf("%v", err)
		return exitInvalidArgument
	}

	mode := docatom.DetectMode(text)
	atoms, registry := docatom.Atomize(text, mode)

	logger.Printf("detected mode: %v", mode)
	logger.Printf("num atoms: %v", len(atoms))
	logger.Printf("num sections: %v", len(registry))

	if !f.noPrint {
		if err := docrender.WriteAtomTable(stdout, atoms, f.maxPreview); err != nil {
			logger.Printf("%v", err)
			return exitInvalidArgument
		}
	}

	var result docpart.PartitionResult
	haveResult := false

	if f.split > 0 {
		result, err = splitWithRelaxation(atoms, f)
		if err != nil {
			if errors.Is(err, docpart.ErrInfeasible) {
				logger.Printf("%v", err)
				return exitInfeasiblePartition
			}
			logger.Printf("%v", err)
			return exitInvalidArgument
		}
		haveResult = true

		if err := docrender.WriteSegmentTable(stdout, result); err != nil {
			logger.Printf("%v", err)
			return exitInvalidArgument
		}

		if f.splitJSONOut != "" {
			if err := docrender.WriteJSON(f.splitJSONOut, result); err != nil {
				logger.Printf("write json: %v", err)
				return exitInvalidArgument
			}
			logger.Printf("wrote split JSON to %v", f.splitJSONOut)
		}

		if f.renderHTMLDir != "" {
			if err := docrender.RenderSegmentsHTML(f.renderHTMLDir, text, atoms, result.Segments); err != nil {
				logger.Printf("render html: %v", err)
				return exitInvalidArgument
			}
			logger.Printf("wrote per-segment HTML to %v", f.renderHTMLDir)
		}
	}

	if f.mermaidOut != "" {
		opts := docrender.MermaidOptions{
			Direction:             f.mermaidDir,
			IncludePseudoHeadings: !f.mermaidNoPseudo,
			IncludeSectionStats:   f.mermaidStats,
			MaxLabelLen:           80,
		}
		var cuts []int
		if haveResult {
			cuts = result.Cuts
		}
		mm := docrender.RenderMermaid(atoms, registry, opts, cuts)
		if err := writeTextFile(f.mermaidOut, mm); err != nil {
			logger.Printf("write mermaid: %v", err)
			return exitInvalidArgument
		}
		logger.Printf("wrote Mermaid diagram to %v", f.mermaidOut)
	}

	return exitOK
}

// splitWithRelaxation attempts a strict partition first, then — only if
// --split-relax was given — retries with progressively looser policies:
// first admitting list/table/code cuts, then paragraph fallback cuts.
func splitWithRelaxation(atoms []docatom.Atom, f flags) (docpart.PartitionResult, error) {
	base := docpart.Policy{
		AllowPseudoHeading: !f.splitNoPseudo,
		AllowHR:            !f.splitNoHR,
	}
	weights := docpart.DefaultWeights()

	try := func(policy docpart.Policy) (docpart.PartitionResult, error) {
		cands := docpart.BuildCutCandidates(atoms, policy)
		return docpart.PartitionInto(atoms, cands, f.split, weights)
	}

	result, err := try(base)
	if err == nil || !f.splitRelax || !errors.Is(err, docpart.ErrInfeasible) {
		return result, err
	}

	if !f.splitNoListTableCode {
		relaxed := base
		relaxed.AllowListTableCode = true
		if result, err = try(relaxed); err == nil {
			return result, nil
		}
	}

	final := base
	final.AllowListTableCode = !f.splitNoListTableCode
	final.AllowParagraphFallback = true
	return try(final)
}

func readInput(f flags) (string, error) {
	if f.text != "" {
		return f.text, nil
	}
	b, err := ioutil.ReadFile(f.file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidArgument, err)
	}
	return string(b), nil
}

func writeTextFile(path, content string) error {
	return renameio.WriteFile(path, []byte(content), 0644)
}

func asError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
