// Package menu runs the numbered text menu over a line-oriented reader.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smileynet/contacts/internal/contact"
)

// Choice is a numbered menu entry.
type Choice int

const (
	ChoiceAdd Choice = iota + 1
	ChoiceView
	ChoiceSearch
	ChoiceDelete
	ChoiceExit
)

// Book is the contact store the menu drives.
type Book interface {
	Add(c contact.Contact)
	Find(name string) (contact.Contact, bool)
	Delete(name string) bool
	Save() error
	Render(w io.Writer)
}

// Menu reads choices and field values line by line and writes prompts and
// results to its writer.
type Menu struct {
	book Book
	in   *bufio.Reader
	out  io.Writer
}

// New creates a Menu reading from r and writing to w.
func New(book Book, r io.Reader, w io.Writer) *Menu {
	return &Menu{book: book, in: bufio.NewReader(r), out: w}
}

// Run shows the menu and dispatches choices until the user exits or the
// input is exhausted.
func (m *Menu) Run() {
	for {
		m.display()
		choice, ok := m.choose()
		if !ok {
			m.println("")
			m.println("Exiting Contact Manager. Goodbye!")
			return
		}
		if !m.dispatch(choice) {
			return
		}
	}
}

// dispatch handles one choice. It returns false when the menu should stop.
func (m *Menu) dispatch(choice Choice) bool {
	switch choice {
	case ChoiceAdd:
		m.add()
	case ChoiceView:
		m.book.Render(m.out)
	case ChoiceSearch:
		m.search()
	case ChoiceDelete:
		m.delete()
	case ChoiceExit:
		m.println("Exiting Contact Manager. Goodbye!")
		return false
	}
	return true
}

func (m *Menu) display() {
	m.println("\nContact Manager")
	m.println("1. Add Contact")
	m.println("2. View Contacts")
	m.println("3. Search Contact")
	m.println("4. Delete Contact")
	m.println("5. Exit")
}

// choose prompts until a valid choice is entered. It returns false on EOF.
func (m *Menu) choose() (Choice, bool) {
	for {
		line, ok := m.prompt("Enter your choice (1-5): ")
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			m.println("Invalid input. Please enter a number.")
			continue
		}
		if n < int(ChoiceAdd) || n > int(ChoiceExit) {
			m.println("Invalid choice. Please choose a number between 1 and 5.")
			continue
		}
		return Choice(n), true
	}
}

func (m *Menu) add() {
	name, _ := m.prompt("Enter Name: ")
	phone, _ := m.prompt("Enter Phone Number: ")
	email, _ := m.prompt("Enter Email: ")

	c := contact.Contact{Name: name, Phone: phone, Email: email}
	if err := c.Validate(); err != nil {
		m.println("Please enter all the details.")
		return
	}
	m.book.Add(c)
	_ = m.book.Save() // reported by the book
}

func (m *Menu) search() {
	name, _ := m.prompt("Enter Name to Search: ")
	if name == "" {
		m.println("Please enter a name.")
		return
	}
	if c, ok := m.book.Find(name); ok {
		m.println(c.String())
	}
}

func (m *Menu) delete() {
	name, _ := m.prompt("Enter Name to Delete: ")
	if name == "" {
		m.println("Name cannot be empty.")
		return
	}
	if m.book.Delete(name) {
		_ = m.book.Save() // reported by the book
	}
}

// prompt writes label and returns the next trimmed input line, of any length.
// A final line without a newline still counts. It returns false when the
// input is exhausted or unreadable.
func (m *Menu) prompt(label string) (string, bool) {
	_, _ = fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}
