package unifysync

import (
	"strings"

	"github.com/ttacon/libphonenumber"

	"bitbucket.org/platesync/unify_backend/models"
	"bitbucket.org/platesync/unify_backend/utils"
)

const defaultTimezone = "America/New_York"

// LocationRow is one configured physical location with its platform-native
// ids. The configuration is the source of truth for which locations exist;
// platform feeds only enrich them.
type LocationRow struct {
	Name       string `json:"name" validate:"required"`
	ToastGUID  string `json:"toast_guid"`
	DoorDashID string `json:"doordash_store_id"`
	SquareID   string `json:"square_location_id"`
}

// LocationMap resolves any platform-native id (or the canonical name) to the
// generated Location. Built once before the mappers run; read-only after.
type LocationMap map[string]*models.Location

func (m LocationMap) Resolve(nativeID string) (*models.Location, bool) {
	loc, ok := m[strings.TrimSpace(nativeID)]
	return loc, ok
}

// BuildLocations creates one Location per configured row and keys the map by
// every native id plus the canonical name. Square's own feed is
// authoritative for physical metadata (address, timezone, phone); rows it
// cannot enrich fall back to the configured default timezone.
func BuildLocations(rows []LocationRow, squareFeed []SquareLocation, tz string) ([]*models.Location, LocationMap) {
	if strings.TrimSpace(tz) == "" {
		tz = defaultTimezone
	}

	squareByID := make(map[string]*SquareLocation, len(squareFeed))
	for i := range squareFeed {
		squareByID[squareFeed[i].ID] = &squareFeed[i]
	}

	locations := make([]*models.Location, 0, len(rows))
	idMap := make(LocationMap, len(rows)*4)

	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		loc := &models.Location{
			ID:       models.NewLocationID(name),
			Name:     name,
			Timezone: tz,
		}
		if row.ToastGUID != "" {
			guid := row.ToastGUID
			loc.ToastGUID = &guid
		}
		if row.DoorDashID != "" {
			id := row.DoorDashID
			loc.DoorDashID = &id
		}
		if row.SquareID != "" {
			id := row.SquareID
			loc.SquareID = &id

			if sq, ok := squareByID[row.SquareID]; ok {
				enrichFromSquare(loc, sq)
			}
		}

		locations = append(locations, loc)
		idMap[name] = loc
		for _, key := range utils.UniqueSlice([]string{row.ToastGUID, row.DoorDashID, row.SquareID}) {
			if key != "" {
				idMap[key] = loc
			}
		}
	}

	return locations, idMap
}

func enrichFromSquare(loc *models.Location, sq *SquareLocation) {
	if strings.TrimSpace(sq.Timezone) != "" {
		loc.Timezone = sq.Timezone
	}
	if sq.Address != nil {
		loc.Address = &models.Address{
			Line1:      sq.Address.AddressLine1,
			Line2:      sq.Address.AddressLine2,
			City:       sq.Address.Locality,
			State:      sq.Address.AdminDistrict,
			PostalCode: sq.Address.PostalCode,
			Country:    sq.Address.Country,
		}
	}
	if sq.Phone != "" {
		loc.Phone = normalizePhone(sq.Phone)
	}
}

// normalizePhone formats to E.164 when the number parses; otherwise the raw
// value is kept rather than dropped.
func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	parsed, err := libphonenumber.Parse(raw, "US")
	if err != nil || !libphonenumber.IsValidNumber(parsed) {
		return raw
	}
	return libphonenumber.Format(parsed, libphonenumber.E164)
}
