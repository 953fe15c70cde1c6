package repoconstants

const TRANSCRIPT_COLLECTION = "transcripts"
