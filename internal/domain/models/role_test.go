package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"owner", RoleOwner, false},
		{" Admin ", RoleAdmin, false},
		{"EDITOR", RoleEditor, false},
		{"reviewer", RoleReviewer, false},
		{"viewer\n", RoleViewer, false},
		{"member", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_Ordering(t *testing.T) {
	for i := 0; i < len(Roles)-1; i++ {
		assert.Greater(t, Roles[i].Rank(), Roles[i+1].Rank())
	}
	assert.True(t, Role("OWNER").AtLeast(RoleAdmin))
	assert.False(t, RoleViewer.AtLeast(RoleEditor))
	assert.False(t, Role("ghost").AtLeast(RoleViewer))
}

func TestTags(t *testing.T) {
	joined := JoinTags([]string{" a ", "", "b"})
	require.NotNil(t, joined)
	assert.Equal(t, "a,b", *joined)
	assert.Nil(t, JoinTags(nil))

	assert.Equal(t, []string{"a", "b"}, SplitTags(joined))
	assert.Equal(t, []string{}, SplitTags(nil))
}

func TestParseCommentTarget(t *testing.T) {
	got, err := ParseCommentTarget("doc")
	require.NoError(t, err)
	assert.Equal(t, TargetDocument, got)

	got, err = ParseCommentTarget("Media")
	require.NoError(t, err)
	assert.Equal(t, TargetMedia, got)

	_, err = ParseCommentTarget("folder")
	assert.Error(t, err)
}
