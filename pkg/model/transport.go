package model

// Request is the transport envelope for one adapter operation.
type Request struct {
	// Machine is the registered adapter instance the operation targets.
	// An empty value addresses the default instance.
	Machine string `json:"machine,omitempty"`
	// Op is the operation code.
	Op OpCode `json:"op"`
	// Trigger is the trigger name for the firing operations.
	Trigger string `json:"trigger,omitempty"`
}

// Response is the transport envelope for one operation result.
type Response struct {
	// Result holds the rendered result of a string operation.
	Result string `json:"result,omitempty"`
	// Results holds the result of a list operation.
	Results []string `json:"results,omitempty"`
	// Payload holds a structured result; decode it with Transport.Decode.
	Payload any `json:"payload,omitempty"`
	// Error holds a configuration error message, empty otherwise.
	Error string `json:"error,omitempty"`
}

// OperationHandler serves one transport request against the registered adapters.
type OperationHandler func(request *Request, response *Response) error

// Endpoint identifies one remote operation server.
type Endpoint struct {
	// ID of the endpoint
	ID string `json:"id"`
	// Address of the endpoint, used for establishing connections
	Address string `json:"address"`
}

// Transport interface definition that a provider needs to implement.
type Transport interface {
	Server
	Client

	// Decode decodes an any-typed payload into the target object.
	// Payloads cross the wire untyped, the receiving side needs to decode them.
	Decode(raw any, target any) error
}

// TransportConfig is an interface representing the contract for a
// configuration object that can be validated.
type TransportConfig interface {
	Validate() error
}

// Server interface defines the fundamental behaviors of a server.
type Server interface {
	// Start initiates the server to begin listening on the specified address.
	Start(listenAddress string, handler OperationHandler, config TransportConfig) error
}

// Client interface defines the fundamental behaviors of a client.
type Client interface {
	// InitConnections initializes a set of connections to the given endpoints.
	// It returns an error if any connection fails.
	InitConnections(endpoints []*Endpoint, config TransportConfig) error

	// SendRequest sends the operation request to one endpoint.
	SendRequest(endpointID string, request *Request, response *Response) error
}
