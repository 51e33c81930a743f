package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestExcludesSelfAndFollowed(t *testing.T) {
	db := newTestDB(t)
	graph := NewGraphService(db)
	svc := NewSuggestionService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	createUser(t, db, "dave")
	createUser(t, db, "erin")

	_, err := graph.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = graph.ToggleFollow(alice.ID, carol.ID)
	require.NoError(t, err)

	suggestions, err := svc.Suggest(alice.ID)
	require.NoError(t, err)

	for _, s := range suggestions {
		assert.NotEqual(t, alice.ID, s.ID, "never suggest the user themselves")
		assert.NotEqual(t, bob.ID, s.ID, "never suggest someone already followed")
		assert.NotEqual(t, carol.ID, s.ID, "never suggest someone already followed")
	}
}

func TestSuggestFallbackWhenGraphIsSilent(t *testing.T) {
	// A follows B and C; B follows C. Friend-of-friend candidates for A are
	// empty (B and C follow nobody outside A's set), so the fallback pool
	// must still produce suggestions.
	db := newTestDB(t)
	graph := NewGraphService(db)
	svc := NewSuggestionService(db)

	a := createUser(t, db, "usera")
	b := createUser(t, db, "userb")
	c := createUser(t, db, "userc")
	d := createUser(t, db, "userd")
	e := createUser(t, db, "usere")

	_, err := graph.ToggleFollow(a.ID, b.ID)
	require.NoError(t, err)
	_, err = graph.ToggleFollow(a.ID, c.ID)
	require.NoError(t, err)
	_, err = graph.ToggleFollow(b.ID, c.ID)
	require.NoError(t, err)

	suggestions, err := svc.Suggest(a.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 2, "everyone outside {a,b,c} is suggested")

	ids := map[uint]bool{}
	for _, s := range suggestions {
		ids[s.ID] = true
	}
	assert.True(t, ids[d.ID])
	assert.True(t, ids[e.ID])
}

func TestSuggestPrefersFriendOfFriend(t *testing.T) {
	db := newTestDB(t)
	graph := NewGraphService(db)
	svc := NewSuggestionService(db)

	a := createUser(t, db, "usera")
	b := createUser(t, db, "userb")
	c := createUser(t, db, "userc")
	d := createUser(t, db, "userd")
	createUser(t, db, "stranger1")
	createUser(t, db, "stranger2")

	// a follows b; b follows c and d. c and d are graph-informed
	// candidates and must come before the random top-up.
	_, err := graph.ToggleFollow(a.ID, b.ID)
	require.NoError(t, err)
	_, err = graph.ToggleFollow(b.ID, c.ID)
	require.NoError(t, err)
	_, err = graph.ToggleFollow(b.ID, d.ID)
	require.NoError(t, err)

	suggestions, err := svc.Suggest(a.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(suggestions), 2)

	head := map[uint]bool{suggestions[0].ID: true, suggestions[1].ID: true}
	assert.True(t, head[c.ID], "friend-of-friend candidates come first")
	assert.True(t, head[d.ID], "friend-of-friend candidates come first")
}

func TestSuggestEmptyGraphNewUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewSuggestionService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	suggestions, err := svc.Suggest(alice.ID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, bob.ID, suggestions[0].ID)
}

func TestSuggestHonorsLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewSuggestionService(db)

	alice := createUser(t, db, "alice")
	for i := 0; i < 15; i++ {
		createUser(t, db, "candidate"+string(rune('a'+i)))
	}

	suggestions, err := svc.Suggest(alice.ID)
	require.NoError(t, err)
	assert.Len(t, suggestions, suggestionLimit)
}
