// Package app wires and runs the crosswalk signal.
//
// An App owns one run: the shared signal state, the controller, the random
// and keyboard generators, the display sinks and, when a status address is
// configured, the status server. The Coordinator joins them: once the run
// flag clears, for a quit key, end of input, a signal or a failed worker, it
// cancels the workers and closes the input so a blocked read returns.
//
// Example Usage:
//
//	a, err := app.New(cfg, logger, input, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	return a.Run(ctx)
package app
