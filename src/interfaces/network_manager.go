package interfaces

// -----------------------------------------------------------------------------
// INetworkManager abstracts upstream HTTP access.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// Get performs a single GET request and returns the response body.
	// Connection failures and non-200 statuses surface as TransportError;
	// there is no internal retry, the caller owns the abort policy.
	Get(url string, params map[string]string) ([]byte, error)
}
