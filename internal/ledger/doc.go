/*
Package ledger holds the primitives shared by the custody, nullifier, intent and
authorization modules of the Mist settlement ledger.

A depositor moves value into a shared custody pool and leaves behind an encrypted
deposit record that names no depositor. Swap intents are posted separately and carry
no reference to any deposit. The single settlement Authority decrypts both off-ledger,
proves ownership through a nullifier derived from the deposit secret, and settles the
intent to fresh destination identities.

# Guarantees

  - A nullifier is accepted by at most one settlement, ever.
  - Pool balances never go negative and never change without a matching deposit,
    top-up or settlement.
  - Deposit records and intents store no depositor identity.
  - Settlement events carry the BLAKE2b-256 hash of the nullifier, never the raw value.

# Packages

  - domain: Identity, Funds, Nullifier, the ledger error taxonomy and event payloads
*/
package ledger
