package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"ghsearch/internal/ui/state"
	"ghsearch/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state       *state.AppState
	width       int
	height      int
	help        help.Model
	keys        help.KeyMap
	textInput   textinput.Model
	spinner     spinner.Model
	helpContent string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState) *ViewModel {
	return &ViewModel{state: appState}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model and the bindings it renders
func (vm *ViewModel) SetHelp(helpModel help.Model, keys help.KeyMap) {
	vm.help = helpModel
	vm.keys = keys
}

// SetHelpContent sets the text shown by the inline help popup
func (vm *ViewModel) SetHelpContent(content string) {
	vm.helpContent = content
}

// UpdateTextInput updates the text input model
func (vm *ViewModel) UpdateTextInput(textInput textinput.Model) {
	vm.textInput = textInput
}

// UpdateSpinner updates the spinner model
func (vm *ViewModel) UpdateSpinner(s spinner.Model) {
	vm.spinner = s
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	vs := views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		SearchBox:        vm.textInput.View(),
		InputFocused:     vm.state.Focus == state.FocusInput,
		Summary:          vm.state.Summary,
		Users:            vm.state.Users,
		SelectedIndex:    vm.state.SelectedIndex,
		ViewportOffset:   vm.state.ViewportOffset,
		ViewportHeight:   vm.state.ViewportHeight,
		InFlight:         vm.state.InFlight,
		Spinner:          vm.spinner.View(),
		StatusMessage:    vm.state.StatusMessage,
		StatusIsError:    vm.state.StatusIsError,
		ShowHelp:         vm.state.ShowHelp,
		HelpScrollOffset: vm.state.HelpScrollOffset,
		HelpContent:      vm.helpContent,
		ShowInfo:         vm.state.ShowInfo,
	}

	if vm.keys != nil {
		vs.KeyHelp = vm.help.View(vm.keys)
	}
	if user, ok := vm.state.SelectedUser(); ok {
		vs.SelectedUser = &user
	}
	return vs
}
