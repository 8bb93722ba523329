package usecase

import (
	"context"

	sonic "github.com/bytedance/sonic"
	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
	"github.com/riskibarqy/football-cache/internal/domain/league"
	"github.com/riskibarqy/football-cache/internal/domain/player"
	"github.com/riskibarqy/football-cache/internal/domain/team"
)

func leagueRow(item apimodel.LeagueData, raw string) league.League {
	row := league.League{
		APIID:       item.League.ID,
		Name:        item.League.Name,
		Type:        item.League.Type,
		Logo:        item.League.Logo,
		CountryName: item.Country.Name,
		CountryCode: item.Country.Code,
		CountryFlag: item.Country.Flag,
		RawJSON:     raw,
	}
	if year, ok := item.CurrentSeasonYear(); ok {
		row.CurrentSeason = &year
	}
	return row
}

func teamRow(item apimodel.TeamData, raw string) team.Team {
	return team.Team{
		APIID:         item.Team.ID,
		Name:          item.Team.Name,
		Code:          item.Team.Code,
		Country:       item.Team.Country,
		Founded:       item.Team.Founded,
		National:      item.Team.National,
		Logo:          item.Team.Logo,
		VenueID:       item.Venue.ID,
		VenueName:     item.Venue.Name,
		VenueAddress:  item.Venue.Address,
		VenueCity:     item.Venue.City,
		VenueCapacity: item.Venue.Capacity,
		VenueSurface:  item.Venue.Surface,
		VenueImage:    item.Venue.Image,
		RawJSON:       raw,
	}
}

func playerRow(item apimodel.PlayerData, raw string, season int) player.Player {
	info := item.Player
	row := player.Player{
		APIID:        info.ID,
		Name:         info.Name,
		Firstname:    info.Firstname,
		Lastname:     info.Lastname,
		Age:          info.Age,
		BirthDate:    info.Birth.Date,
		BirthPlace:   info.Birth.Place,
		BirthCountry: info.Birth.Country,
		Nationality:  info.Nationality,
		Height:       info.Height,
		Weight:       info.Weight,
		Photo:        info.Photo,
		Injured:      info.Injured,
		Season:       season,
		SearchKey:    player.SearchKeyFor(info.Name),
		RawJSON:      raw,
	}

	if len(item.Statistics) > 0 {
		stats := item.Statistics[0]
		if stats.Team.ID > 0 {
			teamID := stats.Team.ID
			row.TeamID = &teamID
			row.TeamName = stats.Team.Name
			row.TeamLogo = stats.Team.Logo
		}
		if stats.League.ID != nil {
			leagueID := *stats.League.ID
			row.LeagueID = &leagueID
			row.LeagueName = stats.League.Name
		}
		row.Position = stats.Games.Position
	}
	return row
}

// decodeRaw parses a stored payload. ok is false when the row has no payload
// or it does not parse; parse failures are logged.
func decodeRaw[T any](ctx context.Context, s *FootballCacheService, kind string, apiID int64, raw string) (T, bool) {
	var out T
	if raw == "" {
		return out, false
	}
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		s.logger.WarnContext(ctx, "cached payload unreadable, rebuilding from columns", "kind", kind, "api_id", apiID, "error", err)
		var zero T
		return zero, false
	}
	return out, true
}

func (s *FootballCacheService) leagueEnvelope(ctx context.Context, rows []league.League) *apimodel.LeagueResponse {
	if len(rows) == 0 {
		return nil
	}
	items := make([]apimodel.LeagueData, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.leagueData(ctx, row))
	}
	return apimodel.NewEnvelope("leagues", items)
}

func (s *FootballCacheService) leagueData(ctx context.Context, row league.League) apimodel.LeagueData {
	if data, ok := decodeRaw[apimodel.LeagueData](ctx, s, "league", row.APIID, row.RawJSON); ok {
		return data
	}

	data := apimodel.LeagueData{
		League: apimodel.LeagueInfo{
			ID:   row.APIID,
			Name: row.Name,
			Type: row.Type,
			Logo: row.Logo,
		},
		Country: apimodel.Country{
			Name: row.CountryName,
			Code: row.CountryCode,
			Flag: row.CountryFlag,
		},
		Seasons: []apimodel.Season{},
	}
	if row.CurrentSeason != nil {
		data.Seasons = append(data.Seasons, apimodel.Season{Year: *row.CurrentSeason, Current: true})
	}
	return data
}

func (s *FootballCacheService) teamEnvelope(ctx context.Context, rows []team.Team) *apimodel.TeamResponse {
	if len(rows) == 0 {
		return nil
	}
	items := make([]apimodel.TeamData, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.teamData(ctx, row))
	}
	return apimodel.NewEnvelope("teams", items)
}

func (s *FootballCacheService) teamData(ctx context.Context, row team.Team) apimodel.TeamData {
	if data, ok := decodeRaw[apimodel.TeamData](ctx, s, "team", row.APIID, row.RawJSON); ok {
		return data
	}

	return apimodel.TeamData{
		Team: apimodel.TeamInfo{
			ID:       row.APIID,
			Name:     row.Name,
			Code:     row.Code,
			Country:  row.Country,
			Founded:  row.Founded,
			National: row.National,
			Logo:     row.Logo,
		},
		Venue: apimodel.Venue{
			ID:       row.VenueID,
			Name:     row.VenueName,
			Address:  row.VenueAddress,
			City:     row.VenueCity,
			Capacity: row.VenueCapacity,
			Surface:  row.VenueSurface,
			Image:    row.VenueImage,
		},
	}
}

func (s *FootballCacheService) playerEnvelope(ctx context.Context, rows []player.Player) *apimodel.PlayerResponse {
	if len(rows) == 0 {
		return nil
	}
	items := make([]apimodel.PlayerData, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.playerData(ctx, row))
	}
	return apimodel.NewEnvelope("players", items)
}

func (s *FootballCacheService) playerData(ctx context.Context, row player.Player) apimodel.PlayerData {
	if data, ok := decodeRaw[apimodel.PlayerData](ctx, s, "player", row.APIID, row.RawJSON); ok {
		return data
	}

	stats := apimodel.PlayerStatistics{
		Games: apimodel.PlayerGames{Position: row.Position},
	}
	if row.TeamID != nil {
		stats.Team = apimodel.TeamRef{ID: *row.TeamID, Name: row.TeamName, Logo: row.TeamLogo}
	}
	if row.LeagueID != nil {
		leagueID := *row.LeagueID
		stats.League = apimodel.PlayerLeague{ID: &leagueID, Name: row.LeagueName, Season: row.Season}
	}

	return apimodel.PlayerData{
		Player: apimodel.PlayerInfo{
			ID:          row.APIID,
			Name:        row.Name,
			Firstname:   row.Firstname,
			Lastname:    row.Lastname,
			Age:         row.Age,
			Nationality: row.Nationality,
			Height:      row.Height,
			Weight:      row.Weight,
			Injured:     row.Injured,
			Photo:       row.Photo,
			Birth: apimodel.Birth{
				Date:    row.BirthDate,
				Place:   row.BirthPlace,
				Country: row.BirthCountry,
			},
		},
		Statistics: []apimodel.PlayerStatistics{stats},
	}
}
