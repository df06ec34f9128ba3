package rawdata

// Source names one raw extract under the raw directory.
type Source string

const (
	SourcePlayerSeason Source = "fbref_fact_player_season_stats.csv"
	SourcePlayerMatch  Source = "fbref_fact_player_match_stats.csv"
	SourceTeamMatch    Source = "fbref_fact_team_match.csv"
	SourceTeamRef      Source = "dim_team.csv"
	SourceStandings    Source = "premier_league_last_5_seasons.csv"
)

func (s Source) String() string {
	return string(s)
}

// Sources lists every extract the transform reads.
func Sources() []Source {
	return []Source{
		SourcePlayerSeason,
		SourcePlayerMatch,
		SourceTeamMatch,
		SourceTeamRef,
		SourceStandings,
	}
}
