/*
Package registration defines the onboarding form: its fields, the three
stages they are collected in, and the schema that validates them.

The schema combines per-field constraints (name length, email syntax, age
derived from the birth date, enumerations, password complexity, accepted
terms) with two record-level rules:

  - PAN requirement: when accountType is "Live", panNumber must be exactly
    ten alphanumeric characters. For any other account type the rule holds
    regardless of panNumber. Failures are attributed to panNumber.
  - Password confirmation: confirmPassword must equal password. Failures are
    attributed to confirmPassword.

Age is computed from years and months only: a user born in May 2006 counts as
18 from May 2024 onwards, whatever the day of month.
*/
package registration
