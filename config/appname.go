package config

// appName identifies this program in log file names, temp directories and
// diagnostic bundles.
const appName = "inkwell"
