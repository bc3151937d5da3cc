// Package youtube talks to the public innertube player endpoint and the
// timedtext caption service. It fetches loosely-typed documents and leaves
// validation to the captions package; the Client satisfies captions.Source.
package youtube
