package collection

import "fmt"

// ArrayList is a growable List that owns its elements.
type ArrayList struct {
	elems []interface{}
}

var _ List = &ArrayList{}

// NewArrayList returns an empty list with room for capacity elements.
func NewArrayList(capacity int) *ArrayList {
	return &ArrayList{elems: make([]interface{}, 0, capacity)}
}

// ArrayListOf returns a list holding a copy of values.
func ArrayListOf(values ...interface{}) *ArrayList {
	l := NewArrayList(len(values))
	l.elems = append(l.elems, values...)
	return l
}

func (l *ArrayList) Iterator() Iterator {
	return &indexIterator{len: len(l.elems), get: func(i int) interface{} { return l.elems[i] }}
}

func (l *ArrayList) Size() int     { return len(l.elems) }
func (l *ArrayList) IsEmpty() bool { return len(l.elems) == 0 }

func (l *ArrayList) Contains(value interface{}) bool {
	return l.IndexOf(value) >= 0
}

func (l *ArrayList) ToSlice() []interface{} {
	out := make([]interface{}, len(l.elems))
	copy(out, l.elems)
	return out
}

func (l *ArrayList) Add(value interface{}) error {
	l.elems = append(l.elems, value)
	return nil
}

func (l *ArrayList) Remove(value interface{}) (bool, error) {
	i := l.IndexOf(value)
	if i < 0 {
		return false, nil
	}
	_, err := l.RemoveAt(i)
	return err == nil, err
}

func (l *ArrayList) Clear() error {
	for i := range l.elems {
		l.elems[i] = nil
	}
	l.elems = l.elems[:0]
	return nil
}

func (l *ArrayList) Get(index int) (interface{}, error) {
	if err := checkIndex(index, len(l.elems)); err != nil {
		return nil, err
	}
	return l.elems[index], nil
}

func (l *ArrayList) Set(index int, value interface{}) (interface{}, error) {
	if err := checkIndex(index, len(l.elems)); err != nil {
		return nil, err
	}
	old := l.elems[index]
	l.elems[index] = value
	return old, nil
}

func (l *ArrayList) IndexOf(value interface{}) int {
	for i, elem := range l.elems {
		if equal(elem, value) {
			return i
		}
	}
	return -1
}

func (l *ArrayList) LastIndexOf(value interface{}) int {
	for i := len(l.elems) - 1; i >= 0; i-- {
		if equal(l.elems[i], value) {
			return i
		}
	}
	return -1
}

// SubList returns a copy of the elements in [from, to).
func (l *ArrayList) SubList(from, to int) (List, error) {
	if err := checkRange(from, to, len(l.elems)); err != nil {
		return nil, err
	}
	return ArrayListOf(l.elems[from:to]...), nil
}

func (l *ArrayList) Insert(index int, value interface{}) error {
	if index != len(l.elems) {
		if err := checkIndex(index, len(l.elems)); err != nil {
			return err
		}
	}
	l.elems = append(l.elems, nil)
	copy(l.elems[index+1:], l.elems[index:])
	l.elems[index] = value
	return nil
}

func (l *ArrayList) RemoveAt(index int) (interface{}, error) {
	if err := checkIndex(index, len(l.elems)); err != nil {
		return nil, err
	}
	old := l.elems[index]
	copy(l.elems[index:], l.elems[index+1:])
	l.elems[len(l.elems)-1] = nil
	l.elems = l.elems[:len(l.elems)-1]
	return old, nil
}

func (l *ArrayList) String() string {
	return fmt.Sprint(l.elems)
}
