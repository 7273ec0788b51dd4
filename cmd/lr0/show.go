package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/npillmayer/lrzero/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var showFlags = struct {
	dot  *string
	html *string
}{}

func init() {
	states := &cobra.Command{
		Use:     "states",
		Short:   "Print the canonical collection of LR(0) item sets",
		Example: `  lr0 states --grammar lists.txt --dot cfsm.dot`,
		Args:    cobra.NoArgs,
		RunE:    runStates,
	}
	showFlags.dot = states.Flags().String("dot", "", "write the state diagram in Graphviz format to a file ('-' for stdout)")
	rootCmd.AddCommand(states)

	tables := &cobra.Command{
		Use:     "tables",
		Short:   "Print the ACTION and GOTO tables and their conflicts",
		Example: `  lr0 tables --html expr`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	showFlags.html = tables.Flags().String("html", "", "write the tables as HTML to <prefix>_action.html and <prefix>_goto.html")
	rootCmd.AddCommand(tables)
}

func runStates(cmd *cobra.Command, args []string) error {
	lrgen, err := generate()
	if err != nil {
		return err
	}
	g := lrgen.Grammar()
	pterm.DefaultSection.Println("Grammar " + g.Name)
	pterm.Println(g.String())
	cfsm := lrgen.CFSM()
	pterm.DefaultSection.Printf("%d states\n", cfsm.Size())
	for _, s := range cfsm.States() {
		title := fmt.Sprintf("state %d", s.ID)
		if s.Accept {
			title += " (accept)"
		}
		pterm.Info.Println(title)
		pterm.Println(s.Items().String())
	}
	if *showFlags.dot != "" {
		return writeTo(*showFlags.dot, cfsm.CFSM2GraphViz)
	}
	return nil
}

func runTables(cmd *cobra.Command, args []string) error {
	lrgen, err := generate()
	if err != nil {
		return err
	}
	g := lrgen.Grammar()
	pterm.DefaultSection.Println("ACTION")
	renderTable(lrgen, g.Terminals(), func(state uint, a *lr.Symbol) string {
		return lrgen.ActionTable().CellString(state, a)
	})
	pterm.DefaultSection.Println("GOTO")
	renderTable(lrgen, g.NonTerminals()[1:], func(state uint, N *lr.Symbol) string {
		if j, ok := lrgen.GotoTable().Goto(state, N); ok {
			return fmt.Sprintf("%d", j)
		}
		return ""
	})
	if lrgen.HasConflicts {
		pterm.Warning.Printf("grammar %s is not LR(0): %d conflicts\n", g.Name, len(lrgen.Conflicts()))
		for _, c := range lrgen.Conflicts() {
			pterm.Println("  " + c.String())
		}
	} else {
		pterm.Success.Printf("grammar %s is LR(0)\n", g.Name)
	}
	if prefix := *showFlags.html; prefix != "" {
		if err = writeTo(prefix+"_action.html", func(w io.Writer) error {
			lr.ActionTableAsHTML(lrgen, w)
			return nil
		}); err != nil {
			return err
		}
		return writeTo(prefix+"_goto.html", func(w io.Writer) error {
			lr.GotoTableAsHTML(lrgen, w)
			return nil
		})
	}
	return nil
}

func renderTable(lrgen *lr.TableGenerator, cols []*lr.Symbol, cell func(uint, *lr.Symbol) string) {
	header := []string{""}
	for _, A := range cols {
		header = append(header, A.Name)
	}
	data := pterm.TableData{header}
	for _, s := range lrgen.CFSM().States() {
		row := []string{fmt.Sprintf("%d", s.ID)}
		for _, A := range cols {
			row = append(row, cell(s.ID, A))
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// writeTo calls write with a file created at path, or with stdout for path "-".
func writeTo(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()
	if err = write(f); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	log.Info("written", "file", path)
	return nil
}
