package schemaform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schemaform"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

func TestSnapshot_FromOutsideThePackage(t *testing.T) {
	ops, err := schemaform.Parse(context.Background(), testsupport.MustReadFixture(t, "testdata/users.yaml"))
	require.NoError(t, err)
	op, err := schemaform.Lookup(ops, "createUser")
	require.NoError(t, err)
	f, err := schemaform.Build(op)
	require.NoError(t, err)

	values := schemaform.Defaults(op).With("email", "ada@example.com")
	view := schemaform.Snapshot(f, values)

	require.Equal(t, render.Snapshot[schemaform.Values](form.Fill(f, values)), view)
	require.False(t, view.Valid)
	require.Equal(t, "email", view.Fields[2].Name)
	require.Equal(t, "ada@example.com", view.Fields[2].Value)
}
