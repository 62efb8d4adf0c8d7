package ui

import "os"

// exit is replaceable to be able to test fatal code paths
var exit = os.Exit
