package briefing

// PrivacyNotice explains what happens to pasted text.
const PrivacyNotice = `Privacy

Your article text is sent to the summarization service, which forwards it to
Google's Gemini API to produce the summary. Nothing you paste and no summary
is stored by briefcast: both live only in memory for the current session.

Speech is produced by your configured text-to-speech engine. Local engines
(espeak, say) never leave your machine; the Google Cloud engine sends the
summary text to Google for synthesis.

Sharing pipes the summary to the share command you configured, or copies it
to your clipboard. Nothing is shared unless you ask for it.`
