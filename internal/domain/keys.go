package domain

// KeyPrefix namespaces every key wvadmin writes to its session store.
const KeyPrefix = "wvadmin:"
