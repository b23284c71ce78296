package vgnav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTable(t *testing.T) {

	assert := assert.New(t)

	var rt RouteTable
	assert.NoError(rt.Register("/", "Home"))
	assert.NoError(rt.Register("/poc/jobs/", "PocJobs"))
	assert.NoError(rt.Register("poc/jobs/:id", "PocJobDetail"))
	assert.ErrorIs(rt.Register("/x", ""), ErrInvalidPattern)
	assert.ErrorIs(rt.Register("/x/:", "X"), ErrInvalidPattern)

	assert.Equal(3, rt.Len())
	assert.Equal([]RouteDefinition{
		{Pattern: "/", ViewID: "Home"},
		{Pattern: "/poc/jobs", ViewID: "PocJobs"},
		{Pattern: "/poc/jobs/:id", ViewID: "PocJobDetail"},
	}, rt.All())

	// All returns a copy
	all := rt.All()
	all[0].ViewID = "Changed"
	assert.Equal("Home", rt.All()[0].ViewID)

	def, ok := rt.Lookup("PocJobDetail")
	assert.True(ok)
	assert.Equal("/poc/jobs/:id", def.Pattern)
	_, ok = rt.Lookup("Nope")
	assert.False(ok)

	assert.Panics(func() { rt.MustRegister("/:a/:a", "Dup") })
}

func TestRouteTableNil(t *testing.T) {
	var rt *RouteTable
	assert.Equal(t, 0, rt.Len())
	assert.Nil(t, rt.All())
	_, err := rt.Path("Home", nil)
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestRouteTablePath(t *testing.T) {

	rt := appRoutes(t)

	p, err := rt.Path("PocJobDetail", Params{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/poc/jobs/42", p)

	p, err = rt.Path("PocJobs", Params{"page": "3"})
	require.NoError(t, err)
	assert.Equal(t, "/poc/jobs?page=3", p)

	p, err = rt.Path("Home", nil)
	require.NoError(t, err)
	assert.Equal(t, "/", p)

	p, err = rt.Path("PocJobDetail", nil)
	assert.ErrorIs(t, err, ErrMissingParam)
	assert.Equal(t, "/poc/jobs/_", p)

	_, err = rt.Path("Nope", nil)
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestRouteTableClone(t *testing.T) {
	rt := appRoutes(t)
	c := rt.clone()
	rt.MustRegister("/late", "Late")
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 5, rt.Len())
}
