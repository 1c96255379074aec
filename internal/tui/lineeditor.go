package tui

// lineEditor is the editable query line. Cursor positions are in runes.
type lineEditor struct {
	runes  []rune
	cursor int
}

func (l *lineEditor) String() string {
	return string(l.runes)
}

func (l *lineEditor) Cursor() int {
	return l.cursor
}

func (l *lineEditor) Insert(r rune) {
	l.runes = append(l.runes, 0)
	copy(l.runes[l.cursor+1:], l.runes[l.cursor:])
	l.runes[l.cursor] = r
	l.cursor++
}

func (l *lineEditor) Backspace() bool {
	if l.cursor == 0 {
		return false
	}
	copy(l.runes[l.cursor-1:], l.runes[l.cursor:])
	l.runes = l.runes[:len(l.runes)-1]
	l.cursor--
	return true
}

func (l *lineEditor) Delete() bool {
	if l.cursor >= len(l.runes) {
		return false
	}
	copy(l.runes[l.cursor:], l.runes[l.cursor+1:])
	l.runes = l.runes[:len(l.runes)-1]
	return true
}

func (l *lineEditor) Left() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *lineEditor) Right() {
	if l.cursor < len(l.runes) {
		l.cursor++
	}
}

func (l *lineEditor) Home() {
	l.cursor = 0
}

func (l *lineEditor) End() {
	l.cursor = len(l.runes)
}

func (l *lineEditor) Clear() bool {
	if len(l.runes) == 0 {
		return false
	}
	l.runes = l.runes[:0]
	l.cursor = 0
	return true
}
