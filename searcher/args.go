package searcher

// Search defaults

const DefaultDepth = 5 // Plies searched below the root

const DefaultParallelDepth = 3 // Top levels whose four moves run concurrently
