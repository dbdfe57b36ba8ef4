package kernel

import (
	"errors"
	"fmt"
	"math"

	"agenthub/internal/pkg/errs"
	"agenthub/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using the NewLocation constructor to ensure validity.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a geographic position as a latitude/longitude pair in degrees.
// Location is an immutable value object used for both the agent's position and the
// customer's delivery destination. Coordinates are not range-checked beyond being
// finite numbers; upstream collaborators own the geodetic semantics.
//
// The zero value of Location is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation(12.9, 77.6)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(12.900000,77.600000)
type Location struct {
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a new Location with the specified coordinates.
// Both latitude and longitude must be finite numbers (not NaN and not infinite).
//
// Parameters:
//   - lat: Latitude in degrees
//   - lon: Longitude in degrees
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if either coordinate is NaN or infinite
//
// Example:
//
//	loc, err := NewLocation(12.9, 77.6)
//	if err != nil {
//	    log.Fatal("Invalid coordinates:", err)
//	}
func NewLocation(lat float64, lon float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLon(lon)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using the constructor.
// The zero value of Location is invalid and will fail this validation.
//
// Returns:
//   - error: ErrLocationIsNotConstructed if the location was not properly initialized, nil otherwise
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude of the location in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lon returns the longitude of the location in degrees.
func (l Location) Lon() float64 {
	return l.lon
}

// String returns a human-readable string representation of the Location.
// The format is "Location(lat,lon)" which is useful for debugging and logging.
// This method implements the fmt.Stringer interface.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lon)
}

// IsEqual compares two locations for equality.
// Two locations are considered equal if they have the same latitude and longitude.
// Both locations must be properly constructed (pass validation) for the comparison to succeed.
//
// Parameters:
//   - other: The Location to compare with
//
// Returns:
//   - bool: true if locations are equal, false otherwise
//   - error: Validation error if either location is improperly constructed
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lon == other.lon, nil
}

// setLat sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidErrorWithCause("lat", fmt.Errorf("%f is not a finite number", lat))
	}

	l.lat = lat
	return nil
}

// setLon sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Although mixing receiver types is generally not recommended, in this case we use pointer
// receivers for these private setters to enable self-encapsulated validation of business
// requirements during object construction.
func (l *Location) setLon(lon float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return errs.NewValueIsInvalidErrorWithCause("lon", fmt.Errorf("%f is not a finite number", lon))
	}

	l.lon = lon
	return nil
}
