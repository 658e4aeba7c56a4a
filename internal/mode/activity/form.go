package activity

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jufengpp/signup/internal/domain"
	"github.com/jufengpp/signup/internal/ui/styles"
)

// focusField is the form element receiving keys.
type focusField int

const (
	focusName focusField = iota
	focusPhone
	focusPackage
	focusSubmit
	focusCount
)

const (
	namePlaceholder  = "请输入家长姓名或孩子姓名"
	phonePlaceholder = "请输入您的联系电话"
	inputWidth       = 30
)

// form holds the registration inputs. selected is -1 until a package is
// picked, so the package is a deliberate choice.
type form struct {
	name     textinput.Model
	phone    textinput.Model
	packages []domain.Package
	selected int
	focus    focusField
	errors   map[domain.Field]string
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = inputWidth
	ti.PlaceholderStyle = ti.PlaceholderStyle.Foreground(styles.TextPlaceholderColor)
	return ti
}

func newForm(packages []domain.Package) form {
	f := form{
		name:     newInput(namePlaceholder, 32),
		phone:    newInput(phonePlaceholder, 20),
		packages: packages,
		selected: -1,
	}
	f.name.Focus()
	return f
}

// setFocus moves focus and returns the cursor blink command when the
// target is a text input.
func (f *form) setFocus(field focusField) tea.Cmd {
	f.focus = (field + focusCount) % focusCount
	f.name.Blur()
	f.phone.Blur()

	switch f.focus {
	case focusName:
		return f.name.Focus()
	case focusPhone:
		return f.phone.Focus()
	}
	return nil
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

// selectPackage picks packages[i] and clears its field error.
func (f *form) selectPackage(i int) {
	if i < 0 || i >= len(f.packages) {
		return
	}
	f.selected = i
	delete(f.errors, domain.FieldCoursePackage)
}

// cyclePackage moves the selection by delta, wrapping.
func (f *form) cyclePackage(delta int) {
	n := len(f.packages)
	if n == 0 {
		return
	}
	if f.selected < 0 {
		f.selectPackage(0)
		return
	}
	f.selectPackage(((f.selected+delta)%n + n) % n)
}

// selectedPackage returns the picked package, if any.
func (f form) selectedPackage() (domain.Package, bool) {
	if f.selected < 0 || f.selected >= len(f.packages) {
		return domain.Package{}, false
	}
	return f.packages[f.selected], true
}

func (f form) request() domain.RegistrationRequest {
	req := domain.RegistrationRequest{
		Name:  f.name.Value(),
		Phone: f.phone.Value(),
	}
	if p, ok := f.selectedPackage(); ok {
		req.CoursePackage = p.ID
	}
	return req
}

// reset clears every input and error and returns focus to the name field.
func (f *form) reset() {
	f.name.Reset()
	f.phone.Reset()
	f.selected = -1
	f.errors = nil
	f.setFocus(focusName)
}

// update routes msg to the focused text input. Editing a field clears its
// error.
func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case focusName:
		before := f.name.Value()
		f.name, cmd = f.name.Update(msg)
		if f.name.Value() != before {
			delete(f.errors, domain.FieldName)
		}
	case focusPhone:
		before := f.phone.Value()
		f.phone, cmd = f.phone.Update(msg)
		if f.phone.Value() != before {
			delete(f.errors, domain.FieldPhone)
		}
	}
	return cmd
}
