package postgres

import (
	"testing"

	"skillmatch-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `snake\_case`, escapeLike("snake_case"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
	assert.Equal(t, "go", escapeLike("go"))
}

func TestBuildMarketplaceWhereOpenOnly(t *testing.T) {
	where, args := buildMarketplaceWhere(domain.MarketplaceFilter{})
	assert.Equal(t, " WHERE j.status = 'OPEN'", where)
	assert.Empty(t, args)
}

func TestBuildMarketplaceWhereAllFilters(t *testing.T) {
	remote := true
	where, args := buildMarketplaceWhere(domain.MarketplaceFilter{
		Search:   "go_dev",
		Location: "Berlin",
		Remote:   &remote,
		Level:    domain.LevelSenior,
		Skill:    "Go",
	})

	assert.Contains(t, where, "(j.title ILIKE $1 OR j.description ILIKE $1 OR c.name ILIKE $1)")
	assert.Contains(t, where, "j.location ILIKE $2")
	assert.Contains(t, where, "j.remote = $3")
	assert.Contains(t, where, "j.level = $4")
	assert.Contains(t, where, "$5 = ANY(j.skills)")
	assert.Equal(t, []interface{}{`%go\_dev%`, "%Berlin%", true, "SENIOR", "Go"}, args)
}

func TestBuildMarketplaceWhereRemoteFalseStillFilters(t *testing.T) {
	remote := false
	where, args := buildMarketplaceWhere(domain.MarketplaceFilter{Remote: &remote})
	assert.Contains(t, where, "j.remote = $1")
	assert.Equal(t, []interface{}{false}, args)
}
