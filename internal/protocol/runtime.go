package protocol

// Runtime.evaluate is never answered locally: devtoolsd's handler builder
// routes the "Runtime." prefix to a forwarder, which hands it to the
// external worker. No registry.Command is declared for it, since devtoolsd
// never registers a listener under that id - declaring one would invite a
// caller to shadow the forwarder by mistake.

// EvaluateParams documents the shape a forwarding worker is expected to
// accept for Runtime.evaluate, for callers constructing forwarder.Job values
// in tests or tooling.
type EvaluateParams struct {
	Expression    string `json:"expression"`
	ContextID     *int   `json:"contextId,omitempty"`
	ReturnByValue bool   `json:"returnByValue,omitempty"`
}

// RemoteObject mirrors Runtime.RemoteObject, the shape Runtime.evaluate
// resolves its result to.
type RemoteObject struct {
	Type        string `json:"type"`
	Subtype     string `json:"subtype,omitempty"`
	ClassName   string `json:"className,omitempty"`
	Value       any    `json:"value,omitempty"`
	Description string `json:"description,omitempty"`
}

// EvaluateReturns mirrors Runtime.evaluate's result object.
type EvaluateReturns struct {
	Result           RemoteObject `json:"result"`
	ExceptionDetails any          `json:"exceptionDetails,omitempty"`
}
