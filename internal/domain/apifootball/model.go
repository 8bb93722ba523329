// Package apifootball holds the API-Football v3 wire model and the pure
// football rules computed over it.
package apifootball

// Envelope is the wrapper every API-Football response is returned in.
type Envelope[T any] struct {
	Get        string `json:"get"`
	Parameters any    `json:"parameters"`
	Errors     any    `json:"errors"`
	Results    int    `json:"results"`
	Paging     Paging `json:"paging"`
	Response   []T    `json:"response"`
}

type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// NewEnvelope wraps items the way the upstream would for endpoint get.
func NewEnvelope[T any](get string, items []T) *Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return &Envelope[T]{
		Get:      get,
		Results:  len(items),
		Paging:   Paging{Current: 1, Total: 1},
		Response: items,
	}
}

// IsEmpty reports whether the envelope is nil or carries no items.
func (e *Envelope[T]) IsEmpty() bool {
	return e == nil || len(e.Response) == 0
}

// Len is nil-safe len(Response).
func (e *Envelope[T]) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Response)
}

type (
	LeagueResponse            = Envelope[LeagueData]
	TeamResponse              = Envelope[TeamData]
	PlayerResponse            = Envelope[PlayerData]
	SquadResponse             = Envelope[TeamSquad]
	StandingsResponse         = Envelope[StandingsData]
	FixtureResponse           = Envelope[FixtureData]
	FixtureEventsResponse     = Envelope[FixtureEvent]
	FixtureStatisticsResponse = Envelope[TeamStatistics]
)

// Leagues.

type LeagueData struct {
	League  LeagueInfo `json:"league"`
	Country Country    `json:"country"`
	Seasons []Season   `json:"seasons"`
}

type LeagueInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Logo string `json:"logo"`
}

type Country struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type Season struct {
	Year     int      `json:"year"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Current  bool     `json:"current"`
	Coverage Coverage `json:"coverage"`
}

type Coverage struct {
	Fixtures    FixtureCoverage `json:"fixtures"`
	Standings   bool            `json:"standings"`
	Players     bool            `json:"players"`
	TopScorers  bool            `json:"top_scorers"`
	TopAssists  bool            `json:"top_assists"`
	TopCards    bool            `json:"top_cards"`
	Injuries    bool            `json:"injuries"`
	Predictions bool            `json:"predictions"`
	Odds        bool            `json:"odds"`
}

type FixtureCoverage struct {
	Events             bool `json:"events"`
	Lineups            bool `json:"lineups"`
	StatisticsFixtures bool `json:"statistics_fixtures"`
	StatisticsPlayers  bool `json:"statistics_players"`
}

// CurrentSeasonYear returns the season flagged current, else the first
// listed season, else false.
func (l LeagueData) CurrentSeasonYear() (int, bool) {
	for _, s := range l.Seasons {
		if s.Current {
			return s.Year, true
		}
	}
	if len(l.Seasons) > 0 {
		return l.Seasons[0].Year, true
	}
	return 0, false
}

// Teams.

type TeamData struct {
	Team  TeamInfo `json:"team"`
	Venue Venue    `json:"venue"`
}

type TeamInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Country  string `json:"country"`
	Founded  *int   `json:"founded"`
	National bool   `json:"national"`
	Logo     string `json:"logo"`
}

type Venue struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity *int   `json:"capacity"`
	Surface  string `json:"surface"`
	Image    string `json:"image"`
}

// TeamRef is the short team shape embedded in players, standings and fixtures.
type TeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Players.

type PlayerData struct {
	Player     PlayerInfo         `json:"player"`
	Statistics []PlayerStatistics `json:"statistics"`
}

type PlayerInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Age         *int   `json:"age"`
	Birth       Birth  `json:"birth"`
	Nationality string `json:"nationality"`
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	Injured     bool   `json:"injured"`
	Photo       string `json:"photo"`
}

type Birth struct {
	Date    string `json:"date"`
	Place   string `json:"place"`
	Country string `json:"country"`
}

type PlayerStatistics struct {
	Team   TeamRef      `json:"team"`
	League PlayerLeague `json:"league"`
	Games  PlayerGames  `json:"games"`
	Goals  PlayerGoals  `json:"goals"`
	Passes PlayerPasses `json:"passes"`
	Cards  PlayerCards  `json:"cards"`
}

// PlayerLeague.Season arrives as a number or a string depending on the endpoint.
type PlayerLeague struct {
	ID      *int64 `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Flag    string `json:"flag"`
	Season  any    `json:"season"`
}

type PlayerGames struct {
	Appearances *int   `json:"appearences"`
	Lineups     *int   `json:"lineups"`
	Minutes     *int   `json:"minutes"`
	Position    string `json:"position"`
	Rating      string `json:"rating"`
	Captain     bool   `json:"captain"`
}

type PlayerGoals struct {
	Total    *int `json:"total"`
	Conceded *int `json:"conceded"`
	Assists  *int `json:"assists"`
	Saves    *int `json:"saves"`
}

type PlayerPasses struct {
	Total    *int `json:"total"`
	Key      *int `json:"key"`
	Accuracy *int `json:"accuracy"`
}

type PlayerCards struct {
	Yellow    *int `json:"yellow"`
	YellowRed *int `json:"yellowred"`
	Red       *int `json:"red"`
}

// Squads.

type TeamSquad struct {
	Team    TeamRef       `json:"team"`
	Players []SquadPlayer `json:"players"`
}

type SquadPlayer struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      *int   `json:"age"`
	Number   *int   `json:"number"`
	Position string `json:"position"`
	Photo    string `json:"photo"`
}

// Standings.

type StandingsData struct {
	League StandingsLeague `json:"league"`
}

type StandingsLeague struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Country   string       `json:"country"`
	Logo      string       `json:"logo"`
	Flag      string       `json:"flag"`
	Season    int          `json:"season"`
	Standings [][]Standing `json:"standings"`
}

type Standing struct {
	Rank        int         `json:"rank"`
	Team        TeamRef     `json:"team"`
	Points      int         `json:"points"`
	GoalsDiff   int         `json:"goalsDiff"`
	Group       string      `json:"group"`
	Form        string      `json:"form"`
	Status      string      `json:"status"`
	Description string      `json:"description"`
	All         StandingRow `json:"all"`
	Home        StandingRow `json:"home"`
	Away        StandingRow `json:"away"`
	Update      string      `json:"update"`
}

type StandingRow struct {
	Played int           `json:"played"`
	Win    int           `json:"win"`
	Draw   int           `json:"draw"`
	Lose   int           `json:"lose"`
	Goals  StandingGoals `json:"goals"`
}

type StandingGoals struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

// Fixtures.

type FixtureData struct {
	Fixture FixtureInfo   `json:"fixture"`
	League  FixtureLeague `json:"league"`
	Teams   FixtureTeams  `json:"teams"`
	Goals   ScorePair     `json:"goals"`
	Score   FixtureScore  `json:"score"`
}

type FixtureInfo struct {
	ID        int64          `json:"id"`
	Referee   string         `json:"referee"`
	Timezone  string         `json:"timezone"`
	Date      string         `json:"date"`
	Timestamp int64          `json:"timestamp"`
	Periods   FixturePeriods `json:"periods"`
	Venue     FixtureVenue   `json:"venue"`
	Status    FixtureStatus  `json:"status"`
}

type FixturePeriods struct {
	First  *int64 `json:"first"`
	Second *int64 `json:"second"`
}

type FixtureVenue struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type FixtureStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type FixtureLeague struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Flag    string `json:"flag"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

type FixtureTeams struct {
	Home FixtureTeam `json:"home"`
	Away FixtureTeam `json:"away"`
}

type FixtureTeam struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}

type ScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type FixtureScore struct {
	Halftime  ScorePair `json:"halftime"`
	Fulltime  ScorePair `json:"fulltime"`
	Extratime ScorePair `json:"extratime"`
	Penalty   ScorePair `json:"penalty"`
}

type FixtureEvent struct {
	Time     EventTime `json:"time"`
	Team     TeamRef   `json:"team"`
	Player   EventRef  `json:"player"`
	Assist   EventRef  `json:"assist"`
	Type     string    `json:"type"`
	Detail   string    `json:"detail"`
	Comments string    `json:"comments"`
}

type EventTime struct {
	Elapsed *int `json:"elapsed"`
	Extra   *int `json:"extra"`
}

type EventRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type TeamStatistics struct {
	Team       TeamRef         `json:"team"`
	Statistics []StatisticItem `json:"statistics"`
}

// StatisticItem.Value is a number, a percentage string or null upstream.
type StatisticItem struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}
