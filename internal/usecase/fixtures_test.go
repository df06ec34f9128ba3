package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-etl/internal/domain/rawdata"
	"github.com/riskibarqy/football-etl/internal/infrastructure/reference"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/csvstore"
	"github.com/riskibarqy/football-etl/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-etl/internal/platform/logging"
	"github.com/riskibarqy/football-etl/internal/platform/normalize"
)

const teamRefCSV = `club_id,club_label,founding_year,venue_id,venue_label,capacity
Q123,Arsenal F.C.,1886,Q55,Emirates Stadium,"60,704"
Q200,Newcastle United F.C.,1892,Q77,St James' Park,52305
Q300,Chelsea F.C.,1905,Q999,capacity,capacity
bad,Nowhere F.C.,1900,,Nowhere Ground,100
`

const teamMatchCSV = `season,game,team,opponent,date,round,venue,result,GF,GA,xG,xGA,Poss,Captain,Formation,Opp Formation,day
2425,2024-08-17 Arsenal-Newcastle Utd,Arsenal,Newcastle Utd,2024-08-17,Matchweek 1,Home,W,2,0,1.8,0.5,55,Bukayo Saka,4-3-3,4-4-2,Sat
2425,2024-08-17 Arsenal-Newcastle Utd,Newcastle Utd,Arsenal,2024-08-17,Matchweek 1,Away,L,0,2,0.5,1.8,45,Unknown Skipper,4-4-2,4-3-3,Sat
2425,2025-01-04 Chelsea-Arsenal,Chelsea,Arsenal,2025-01-04,Matchweek 20,Home,D,1,1,,,50,,4-2-3-1,4-3-3,
`

const playerSeasonCSV = `player,pos,nation,born
Bukayo Saka,FW,eng ENG,2001
Alexander Isak,FW,se SWE,1999
`

const playerMatchCSV = `season,game,team,player,pos,nation,min
2425,2024-08-17 Arsenal-Newcastle Utd,Arsenal,Bukayo Saka,FW,eng ENG,90
season,game,team,player,pos,nation,min
2425,2024-08-17 Arsenal-Newcastle Utd,Newcastle Utd,Alexander Isak,FW,se SWE,88
2425,2025-01-04 Chelsea-Arsenal,Chelsea,Cole Palmer,AM,eng ENG,90
`

const standingsCSV = "\ufeff" + `Mùa giải,Match_Category,Rank,Team,MP,W,D,L,GF:GA,GD,Pts,Recent_Form
2024/2025,overall,5,Newcastle,38,20,6,12,86:41,45,66,W W L D W
2024/2025,weird,1,Arsenal,38,28,5,5,91:29,62,89,WWWWW
2024/2025,home,1,Atlantis Town,19,1,1,17,5:40,-35,4,LLLLL
`

type fixture struct {
	rawDir       string
	processedDir string
	raw          *csvstore.RawRepository
	store        *csvstore.WarehouseRepository
	normalizer   *normalize.Normalizer
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	root := t.TempDir()
	rawDir := filepath.Join(root, "raw")
	processedDir := filepath.Join(root, "processed")
	require.NoError(t, os.MkdirAll(rawDir, 0o755))

	writeRaw(t, rawDir, rawdata.SourceTeamRef, teamRefCSV)
	writeRaw(t, rawDir, rawdata.SourceTeamMatch, teamMatchCSV)
	writeRaw(t, rawDir, rawdata.SourcePlayerSeason, playerSeasonCSV)
	writeRaw(t, rawDir, rawdata.SourcePlayerMatch, playerMatchCSV)
	writeRaw(t, rawDir, rawdata.SourceStandings, standingsCSV)

	catalog, err := reference.Default()
	require.NoError(t, err)

	return fixture{
		rawDir:       rawDir,
		processedDir: processedDir,
		raw:          csvstore.NewRawRepository(rawDir),
		store:        csvstore.NewWarehouseRepository(processedDir),
		normalizer:   normalize.New(catalog),
	}
}

func writeRaw(t *testing.T, dir string, source rawdata.Source, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, source.String()), []byte(content), 0o644))
}

func (f fixture) dimensionService() *DimensionService {
	return NewDimensionService(f.raw, f.store, f.normalizer, memory.NewSurrogateAllocator(), logging.NewNop(), 0)
}

func (f fixture) factService() *FactService {
	return NewFactService(f.raw, f.store, f.normalizer, logging.NewNop(), 0)
}

func statsFor(t *testing.T, report StageReport, table string) TableStats {
	t.Helper()
	for _, stats := range report.Tables {
		if stats.Table == table {
			return stats
		}
	}
	t.Fatalf("no stats for table %s in stage %s", table, report.Stage)
	return TableStats{}
}

func ptr[T any](v T) *T { return &v }
