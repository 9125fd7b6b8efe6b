// Package deploy turns the data of a finished wizard session into a Plan:
// the artifacts to write, the commands to launch the processes and the
// endpoint miners connect to. It never runs anything itself.
package deploy
