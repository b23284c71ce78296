package vgnav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherBindPush(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory("/poc/jobs/3?tab=log")
	d := New(appRoutes(t), h)
	defer d.Close()

	var id, tab, sort StringParam
	sort = "asc"
	d.Bind("id", &id)
	d.Bind("tab", &tab)
	d.Bind("sort", &sort)
	assert.Equal(StringParam("3"), id)
	assert.Equal(StringParam("log"), tab)
	assert.Equal(StringParam("asc"), sort, "no value in the location leaves the param as is")

	id, tab = "7", "info"
	require.NoError(t, d.Push())
	assert.Equal("/poc/jobs/7?sort=asc&tab=info", h.CurrentPath())
	assert.Equal(1, h.Pushes())

	s := d.CurrentState()
	assert.Equal("PocJobDetail", s.ViewID())
	assert.Equal("7", s.Params().ByName("id"))

	// the navigation removed the bindings
	id = "9"
	require.NoError(t, d.Push())
	assert.Equal("/poc/jobs/7?sort=asc&tab=info", h.CurrentPath())
	assert.Equal(1, h.Pushes())
}

func TestDispatcherBindFromObserver(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory("/")
	d := New(appRoutes(t), h)
	defer d.Close()

	var id StringParam
	d.Subscribe(ObserverFunc(func(s NavigationState) {
		if s.ViewID() == "PocJobDetail" {
			d.Bind("id", &id)
		}
	}))

	require.NoError(t, d.NavigateTo("/poc/jobs/5"))
	assert.Equal(StringParam("5"), id)

	id = "6"
	require.NoError(t, d.Push(NavReplace))
	assert.Equal("/poc/jobs/6", h.CurrentPath())
	assert.Equal(1, h.Replaces())

	id = "8"
	require.NoError(t, d.Push())
	assert.Equal("/poc/jobs/8", h.CurrentPath())
}

func TestDispatcherUnbindParams(t *testing.T) {

	h := NewMemoryHistory("/poc/jobs?page=1")
	d := New(appRoutes(t), h)
	defer d.Close()

	var page StringParam
	d.Bind("page", &page)
	assert.Equal(t, StringParam("1"), page)

	d.UnbindParams()
	page = "2"
	require.NoError(t, d.Push())
	assert.Equal(t, "/poc/jobs?page=1", h.CurrentPath())
	assert.Equal(t, 0, h.Pushes())
}

func TestDispatcherPushErrors(t *testing.T) {

	d := New(appRoutes(t), NewMemoryHistory("/poc/jobs/3"))
	defer d.Close()

	var id StringParam
	d.Bind("id", &id)
	id = ""
	assert.ErrorIs(t, d.Push(), ErrMissingParam)
	assert.Equal(t, "3", d.CurrentState().Params().ByName("id"))

	require.NoError(t, d.NavigateTo("/nowhere"))
	assert.ErrorIs(t, d.Push(), ErrNoRoute)
}

func TestStringParam(t *testing.T) {
	s := StringParam("x")
	assert.Equal(t, []string{"x"}, s.BindParamRead())
	s.BindParamWrite([]string{"a", "b"})
	assert.Equal(t, StringParam("a"), s)
	s.BindParamWrite(nil)
	assert.Equal(t, StringParam(""), s)
}
