package httperror

// Error codes let the shells translate errors into the user's language.
const (
	Code400_0 = "400_0" // Invalid request body.
	Code400_1 = "400_1" // The wizard step holds an invalid value.
	Code400_2 = "400_2" // The selected value is not in the catalog.
	Code401_0 = "401_0" // Not authorized.
	Code404_0 = "404_0" // Wizard session not found or expired.
	Code409_0 = "409_0" // The action does not apply to the current wizard state.
	Code409_1 = "409_1" // A submission is already in flight.
	Code422_0 = "422_0" // The transaction is missing required data.
	Code500_0 = "500_0" // An internal error occurred while processing this request.
	Code502_0 = "502_0" // The remote service could not be reached or failed.
)
