package env

// Prefix is the environment variable prefix for CLI flags
const Prefix = "SOLPRICE"
