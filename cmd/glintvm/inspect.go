package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"glintvm/internal/engine"
	"glintvm/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <program>",
	Short: "Run a program and browse its post-mortem stack, globals, and heap",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("plain", false, "print stack/globals/memory as plain text instead of opening the TUI")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFlag(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	prog, err := loadProgram(args[0])
	if err != nil {
		return err
	}

	vm := engine.New(prog, cfg)
	runErr := vm.Run()

	plain, err := cmd.Flags().GetBool("plain")
	if err != nil {
		return err
	}
	if plain {
		if runErr != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "halted: %s: %s\n", runErr.Kind, runErr.Message)
		}
		inspect.PrintStack(cmd.OutOrStdout(), vm)
		inspect.PrintGlobals(cmd.OutOrStdout(), vm)
		inspect.PrintMemoryStats(cmd.OutOrStdout(), vm)
		return nil
	}

	m := newInspectModel(vm, runErr)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("inspect TUI: %w", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
	return nil
}

type inspectModel struct {
	stackTable   table.Model
	globalsTable table.Model
	memoryLine   string
	haltLine     string
	focus        int // 0 = stack, 1 = globals
}

func newInspectModel(vm *engine.VM, runErr *engine.Error) inspectModel {
	stackCols := []table.Column{
		{Title: "Slot", Width: 6},
		{Title: "Kind", Width: 10},
		{Title: "Value", Width: 40},
	}
	var stackRows []table.Row
	for _, e := range inspect.Stack(vm) {
		stackRows = append(stackRows, table.Row{fmt.Sprint(e.Index), e.Kind, e.Text})
	}
	stackTable := table.New(table.WithColumns(stackCols), table.WithRows(stackRows), table.WithFocused(true))

	globalCols := []table.Column{
		{Title: "Slot", Width: 6},
		{Title: "Kind", Width: 10},
		{Title: "Value", Width: 40},
	}
	var globalRows []table.Row
	for _, e := range inspect.Globals(vm) {
		globalRows = append(globalRows, table.Row{fmt.Sprint(e.Slot), e.Kind, e.Text})
	}
	globalsTable := table.New(table.WithColumns(globalCols), table.WithRows(globalRows))

	m := inspect.Memory(vm)
	memoryLine := fmt.Sprintf("young=%d old=%d collections=%d weakrefs=%d", m.Young, m.Old, m.Collections, m.WeakRefs)

	haltLine := "halted cleanly"
	if runErr != nil {
		haltLine = fmt.Sprintf("halted: %s: %s", runErr.Kind, runErr.Message)
	}

	return inspectModel{stackTable: stackTable, globalsTable: globalsTable, memoryLine: memoryLine, haltLine: haltLine}
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.stackTable.Focus()
				m.globalsTable.Blur()
			} else {
				m.globalsTable.Focus()
				m.stackTable.Blur()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.stackTable, cmd = m.stackTable.Update(msg)
	} else {
		m.globalsTable, cmd = m.globalsTable.Update(msg)
	}
	return m, cmd
}

func (m inspectModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	subtitle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	return fmt.Sprintf(
		"%s\n%s\n\n%s\n%s\n\n%s\n%s\n\npress tab to switch tables, q to quit\n",
		title.Render("operand stack"), m.stackTable.View(),
		title.Render("globals"), m.globalsTable.View(),
		subtitle.Render(m.memoryLine), subtitle.Render(m.haltLine),
	)
}
