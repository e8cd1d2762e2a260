package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type widget struct {
	name string
	size int
}

type widgetOption ConfigOption[widget]

func named(name string) widgetOption {
	return OptionFunc[widget](func(w *widget) error {
		w.name = name
		return nil
	})
}

func sized(size int) widgetOption {
	return OptionFunc[widget](func(w *widget) error {
		if size < 0 {
			return errors.New("negative size")
		}
		w.size = size
		return nil
	})
}

func TestApplyOptionsInOrder(t *testing.T) {
	var w widget
	assert.NoError(t, ApplyOptions(&w, named("a"), sized(2), named("b")))
	assert.Equal(t, widget{name: "b", size: 2}, w)
}

func TestApplyOptionsStopsAtFirstError(t *testing.T) {
	var w widget
	err := ApplyOptions(&w, named("a"), sized(-1), named("b"))
	assert.EqualError(t, err, "negative size")
	assert.Equal(t, widget{name: "a"}, w)
}

func TestApplyNoOptions(t *testing.T) {
	w := widget{name: "x"}
	assert.NoError(t, ApplyOptions[widget, widgetOption](&w))
	assert.Equal(t, widget{name: "x"}, w)
}
